package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/metrics"
)

const (
	// ListingIntegration は公開 URL を組み立てられる外部ストアの種類です。
	ListingIntegration = "etsy"

	etsyListingURL = "https://www.etsy.com/listing/"
)

// lookupListing は Printify の商品一覧から公開した商品の出品 URL を探します。
func (p *MerchPipeline) lookupListing(ctx context.Context, creds domain.Credentials, title string) (lookup domain.ListingLookup) {
	defer func() { metrics.RecordListingLookup(lookup.Status) }()

	if !creds.HasPrintify() {
		return domain.ListingLookup{Status: domain.LookupSkipped}
	}

	products, err := p.clients.Products().ListProducts(ctx, creds.PrintifyToken, creds.PrintifyShopID)
	if err != nil {
		slog.WarnContext(ctx, "Listing lookup failed", "error", err)
		return domain.ListingLookup{Status: domain.LookupFailed, Err: err}
	}

	url, ok := FindListing(products, title, ListingIntegration)
	if !ok {
		return domain.ListingLookup{Status: domain.LookupNotFound}
	}
	return domain.ListingLookup{Status: domain.LookupFound, URL: url}
}

// FindListing はタイトルが title で始まる最初の商品について、
// integration 種別の最初の外部リンクから公開 URL を組み立てます。
func FindListing(products []domain.PODProduct, title, integration string) (string, bool) {
	for _, product := range products {
		if !strings.HasPrefix(product.Title, title) {
			continue
		}
		for _, link := range product.External {
			if link.IntegrationType == integration && link.ExternalID != "" {
				return etsyListingURL + link.ExternalID, true
			}
		}
		return "", false
	}
	return "", false
}
