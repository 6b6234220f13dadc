package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ap-merch-web/internal/adapters"
	"ap-merch-web/internal/config"
	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/merch"
	"ap-merch-web/internal/niche"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeText struct {
	text     string
	err      error
	messages []domain.Message
}

func (f *fakeText) GenerateText(_ context.Context, messages []domain.Message) (string, error) {
	f.messages = messages
	return f.text, f.err
}

type fakeImage struct {
	url string
	err error
	req domain.ImageRequest
}

func (f *fakeImage) GenerateImage(_ context.Context, req domain.ImageRequest) (string, error) {
	f.req = req
	return f.url, f.err
}

type fakeSelector struct {
	result niche.Result
	err    error
}

func (f fakeSelector) Select(context.Context, []string) (niche.Result, error) {
	return f.result, f.err
}

type fakeProducts struct {
	products []domain.PODProduct
	err      error
	calls    int
}

func (f *fakeProducts) ListProducts(context.Context, string, string) ([]domain.PODProduct, error) {
	f.calls++
	return f.products, f.err
}

type fakeDeliverer struct {
	calls int
	err   error
	got   domain.Payload
}

func (f *fakeDeliverer) Deliver(_ context.Context, _ string, payload domain.Payload) error {
	f.calls++
	f.got = payload
	return f.err
}

type fakeClients struct {
	text     *fakeText
	image    *fakeImage
	selector niche.Selector
	products *fakeProducts
	webhook  Deliverer
}

func (f *fakeClients) TextGenerator(_ context.Context, creds domain.Credentials) (adapters.TextGenerator, error) {
	if creds.AIKey == "" {
		return nil, domain.ConfigError("idea", "API key missing")
	}
	return f.text, nil
}

func (f *fakeClients) ImageGenerator(_ context.Context, creds domain.Credentials) (adapters.ImageGenerator, error) {
	if creds.AIKey == "" {
		return nil, domain.ConfigError("image", "API key missing")
	}
	return f.image, nil
}

func (f *fakeClients) NicheSelector(domain.Credentials) (niche.Selector, error) {
	return f.selector, nil
}

func (f *fakeClients) Products() ProductLister { return f.products }
func (f *fakeClients) Webhook() Deliverer      { return f.webhook }

type fakeSlack struct {
	notified []domain.NotificationRequest
	errors   []error
}

func (f *fakeSlack) Notify(_ context.Context, req domain.NotificationRequest) error {
	f.notified = append(f.notified, req)
	return nil
}

func (f *fakeSlack) NotifyError(_ context.Context, err error, _ domain.NotificationRequest) error {
	f.errors = append(f.errors, err)
	return nil
}

type fixture struct {
	p       *MerchPipeline
	clients *fakeClients
	slack   *fakeSlack
	cfg     *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		AIProvider:   config.ProviderOpenAI,
		IdeaContext:  config.IdeaContextOptional,
		NicheSource:  config.NicheSourceTrends,
		ImageSize:    merch.DefaultImageSize,
		ImageQuality: merch.DefaultImageQuality,
	}
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	seeds, err := merch.NewSeedRoller(catalog.Seeds.Adjectives, catalog.Seeds.Audiences, catalog.Seeds.Objects, rand.NewPCG(1, 2))
	require.NoError(t, err)

	clients := &fakeClients{
		text:     &fakeText{text: "Funny Cat Mug idea"},
		image:    &fakeImage{url: "https://img.example.com/cat.png"},
		selector: fakeSelector{result: niche.Result{Selected: "cat mugs"}},
		products: &fakeProducts{},
		webhook:  &fakeDeliverer{},
	}
	slack := &fakeSlack{}
	p, err := NewMerchPipeline(cfg, clients, catalog, seeds, slack)
	require.NoError(t, err)
	return &fixture{p: p, clients: clients, slack: slack, cfg: cfg}
}

var creds = domain.Credentials{AIKey: "sk-test", WebhookURL: "https://hooks.example.com/catch"}

// --- tests ---

func TestEndToEnd_FunnyCatMug(t *testing.T) {
	var received domain.Payload
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, "upstream says hi")
	}))
	defer srv.Close()

	f := newFixture(t)
	f.clients.webhook = adapters.NewWebhookAdapter(10*time.Second, httpkit.WithSkipNetworkValidation(true))
	c := creds
	c.WebhookURL = srv.URL

	var s domain.Session
	ctx := context.Background()
	require.NoError(t, f.p.GenerateIdea(ctx, &s, c))
	assert.Equal(t, domain.ProductMug, s.ProductType)
	require.NoError(t, f.p.GenerateImage(ctx, &s, c))

	res, err := f.p.Publish(ctx, &s, c)
	require.NoError(t, err)
	assert.Equal(t, "17.99", received.Price)
	assert.Equal(t, "Mug", received.Category)
	assert.Equal(t, "Funny Cat Mug idea", received.Title)
	assert.Equal(t, domain.LookupSkipped, res.Listing.Status)
	require.Len(t, f.slack.notified, 1)

	status = http.StatusInternalServerError
	_, err = f.p.Publish(ctx, &s, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "upstream says hi")
	assert.Len(t, f.slack.errors, 1)
}

func TestPublish_NoWebhookIsNoop(t *testing.T) {
	f := newFixture(t)
	hook := f.clients.webhook.(*fakeDeliverer)

	sessions := []domain.Session{
		{},
		{Idea: "idea"},
		{Idea: "idea", ImageURL: "https://img.example.com/x.png", ProductType: domain.ProductMug},
	}
	for _, s := range sessions {
		_, err := f.p.Publish(context.Background(), &s, domain.Credentials{AIKey: "k"})
		assert.Equal(t, domain.KindConfig, domain.KindOf(err))
	}
	assert.Zero(t, hook.calls)
}

func TestPublish_RequiresIdeaAndImage(t *testing.T) {
	f := newFixture(t)
	hook := f.clients.webhook.(*fakeDeliverer)

	s := domain.Session{Idea: "idea"}
	_, err := f.p.Publish(context.Background(), &s, creds)
	assert.Equal(t, domain.KindConfig, domain.KindOf(err))
	assert.Zero(t, hook.calls)
}

func TestPublish_ListingLookup(t *testing.T) {
	withPrintify := creds
	withPrintify.PrintifyToken = "pf"
	withPrintify.PrintifyShopID = "1"
	session := func() *domain.Session {
		return &domain.Session{Idea: "Funny Cat Mug idea\nmore text", ImageURL: "https://img.example.com/x.png", ProductType: domain.ProductMug}
	}

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.clients.products.products = []domain.PODProduct{
			{Title: "Other"},
			{Title: "Funny Cat Mug idea - 11oz", External: []domain.ExternalLink{
				{IntegrationType: "shopify", ExternalID: "s1"},
				{IntegrationType: "etsy", ExternalID: "123"},
			}},
		}
		res, err := f.p.Publish(context.Background(), session(), withPrintify)
		require.NoError(t, err)
		assert.Equal(t, domain.LookupFound, res.Listing.Status)
		assert.Equal(t, "https://www.etsy.com/listing/123", res.Listing.URL)
		assert.Equal(t, res.Listing.URL, f.slack.notified[0].ListingURL)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.clients.products.products = []domain.PODProduct{{Title: "Something else"}}
		res, err := f.p.Publish(context.Background(), session(), withPrintify)
		require.NoError(t, err)
		assert.Equal(t, domain.LookupNotFound, res.Listing.Status)
	})

	t.Run("failed does not roll back publish", func(t *testing.T) {
		f := newFixture(t)
		f.clients.products.err = domain.StatusError("printify products", 401, "unauthorized")
		res, err := f.p.Publish(context.Background(), session(), withPrintify)
		require.NoError(t, err)
		assert.Equal(t, domain.LookupFailed, res.Listing.Status)
		assert.Contains(t, res.Listing.Err.Error(), "401")
		assert.Equal(t, 1, f.clients.webhook.(*fakeDeliverer).calls)
	})

	t.Run("skipped without credentials", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.p.Publish(context.Background(), session(), creds)
		require.NoError(t, err)
		assert.Equal(t, domain.LookupSkipped, res.Listing.Status)
		assert.Zero(t, f.clients.products.calls)
	})
}

func TestGenerateIdea(t *testing.T) {
	t.Run("classifies and clears previous image", func(t *testing.T) {
		f := newFixture(t)
		f.clients.text.text = "  A Shirt and Mug idea  "
		s := domain.Session{ImageURL: "https://old", HotNiche: "cat mugs"}
		require.NoError(t, f.p.GenerateIdea(context.Background(), &s, creds))
		assert.Equal(t, "A Shirt and Mug idea", s.Idea)
		assert.Equal(t, domain.ProductMug, s.ProductType)
		assert.Empty(t, s.ImageURL)
		assert.Contains(t, f.clients.text.messages[1].Content, "cat mugs")
	})

	t.Run("failure leaves state unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.clients.text.err = errors.New("connection reset")
		before := domain.Session{Idea: "old", ImageURL: "https://old", ProductType: domain.ProductPoster}
		s := before
		err := f.p.GenerateIdea(context.Background(), &s, creds)
		require.Error(t, err)
		assert.Equal(t, domain.KindTransport, domain.KindOf(err))
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, before, s)
	})

	t.Run("missing key is a config error", func(t *testing.T) {
		f := newFixture(t)
		var s domain.Session
		err := f.p.GenerateIdea(context.Background(), &s, domain.Credentials{})
		assert.Equal(t, domain.KindConfig, domain.KindOf(err))
		assert.Nil(t, f.clients.text.messages)
	})

	t.Run("required niche context", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.IdeaContext = config.IdeaContextNiche
		var s domain.Session
		err := f.p.GenerateIdea(context.Background(), &s, creds)
		assert.Equal(t, domain.KindConfig, domain.KindOf(err))
		assert.Nil(t, f.clients.text.messages)
	})

	t.Run("seed context", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.IdeaContext = config.IdeaContextSeed
		s := domain.Session{Seed: "retro dog owners poster", HotNiche: "ignored"}
		require.NoError(t, f.p.GenerateIdea(context.Background(), &s, creds))
		assert.Contains(t, f.clients.text.messages[1].Content, "retro dog owners poster")
	})

	t.Run("empty completion is an empty result", func(t *testing.T) {
		f := newFixture(t)
		f.clients.text.text = "   "
		var s domain.Session
		err := f.p.GenerateIdea(context.Background(), &s, creds)
		assert.Equal(t, domain.KindEmpty, domain.KindOf(err))
		assert.Empty(t, s.Idea)
	})
}

func TestGenerateImage(t *testing.T) {
	t.Run("requires idea", func(t *testing.T) {
		f := newFixture(t)
		var s domain.Session
		err := f.p.GenerateImage(context.Background(), &s, creds)
		assert.Equal(t, domain.KindConfig, domain.KindOf(err))
	})

	t.Run("prompt embeds type and idea", func(t *testing.T) {
		f := newFixture(t)
		s := domain.Session{Idea: "Funny Cat Mug idea", ProductType: domain.ProductMug}
		require.NoError(t, f.p.GenerateImage(context.Background(), &s, creds))
		assert.Equal(t, "https://img.example.com/cat.png", s.ImageURL)
		assert.Contains(t, f.clients.image.req.Prompt, "A mug design featuring: Funny Cat Mug idea")
		assert.Equal(t, "1024x1024", f.clients.image.req.Size)
	})

	t.Run("failure keeps previous URL", func(t *testing.T) {
		f := newFixture(t)
		f.clients.image.err = domain.StatusError("openai image", 400, "content policy")
		s := domain.Session{Idea: "idea", ImageURL: "https://old"}
		err := f.p.GenerateImage(context.Background(), &s, creds)
		assert.Equal(t, domain.KindStatus, domain.KindOf(err))
		assert.Equal(t, "https://old", s.ImageURL)
	})
}

func TestSelectNiche(t *testing.T) {
	f := newFixture(t)
	var s domain.Session

	_, err := f.p.SelectNiche(context.Background(), &s, creds, " \n  ")
	assert.Equal(t, domain.KindConfig, domain.KindOf(err))

	res, err := f.p.SelectNiche(context.Background(), &s, creds, "cat mugs\ndog shirts")
	require.NoError(t, err)
	assert.Equal(t, "cat mugs", res.Selected)
	assert.Equal(t, "cat mugs", s.HotNiche)

	f.clients.selector = fakeSelector{err: domain.EmptyError("google trends", "no data")}
	_, err = f.p.SelectNiche(context.Background(), &s, creds, "x")
	assert.Equal(t, domain.KindEmpty, domain.KindOf(err))
	assert.Equal(t, "cat mugs", s.HotNiche)
}

func TestPickCatalogNiche(t *testing.T) {
	f := newFixture(t)
	var s domain.Session

	phrase := f.p.Catalog().Niches[0]
	require.NoError(t, f.p.PickCatalogNiche(&s, phrase))
	assert.Equal(t, phrase, s.HotNiche)

	err := f.p.PickCatalogNiche(&s, "not in catalog")
	assert.Equal(t, domain.KindConfig, domain.KindOf(err))
	assert.Equal(t, phrase, s.HotNiche)
}

func TestRollSeed(t *testing.T) {
	f := newFixture(t)
	var s domain.Session
	seed := f.p.RollSeed(&s)
	assert.NotEmpty(t, seed)
	assert.Equal(t, seed, s.Seed)
}

func TestFindListing(t *testing.T) {
	products := []domain.PODProduct{
		{Title: "Funny Cat Mug idea", External: nil},
		{Title: "Funny Cat Mug idea v2", External: []domain.ExternalLink{{IntegrationType: "etsy", ExternalID: "9"}}},
	}
	// 最初に前方一致した商品だけを見ます。
	_, ok := FindListing(products, "Funny Cat Mug idea", ListingIntegration)
	assert.False(t, ok)

	url, ok := FindListing(products[1:], "Funny Cat", ListingIntegration)
	assert.True(t, ok)
	assert.Equal(t, "https://www.etsy.com/listing/9", url)
}
