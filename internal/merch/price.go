package merch

import "strings"

// DefaultPrice はどの価格帯にも該当しない商品の価格です。
const DefaultPrice = "19.99"

type priceTier struct {
	keyword string
	price   string
}

var priceTable = []priceTier{
	{"mug", "17.99"},
	{"shirt", "29.99"},
	{"poster", "21.99"},
}

// PriceOf は商品タイプ文字列から販売価格を返します。常に値を返します。
func PriceOf(productType string) string {
	lower := strings.ToLower(productType)
	for _, t := range priceTable {
		if strings.Contains(lower, t.keyword) {
			return t.price
		}
	}
	return DefaultPrice
}
