// Package merch はアイデア本文の分類、価格表、シード生成、プロンプト組み立てを扱います。
package merch

import (
	"strings"

	"ap-merch-web/internal/domain"
)

// Rule は小文字化済みテキストに対する判定とその結果ラベルの組です。
type Rule struct {
	Match func(lower string) bool
	Label domain.ProductType
}

// ContainsAny はいずれかの部分文字列を含むかを判定する Match 関数を返します。
func ContainsAny(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
		return false
	}
}

// DefaultRules は mug → shirt → poster の優先順位です。
var DefaultRules = []Rule{
	{Match: ContainsAny("mug"), Label: domain.ProductMug},
	{Match: ContainsAny("shirt", "t-shirt"), Label: domain.ProductTShirt},
	{Match: ContainsAny("poster"), Label: domain.ProductPoster},
}

// Classifier はルールを先頭から評価し、最初に一致したラベルを返します。
type Classifier struct {
	rules    []Rule
	fallback domain.ProductType
}

func NewClassifier(rules []Rule, fallback domain.ProductType) *Classifier {
	return &Classifier{rules: rules, fallback: fallback}
}

// Classify は大文字小文字を区別せずに text を分類します。
func (c *Classifier) Classify(text string) domain.ProductType {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if r.Match(lower) {
			return r.Label
		}
	}
	return c.fallback
}

var defaultClassifier = NewClassifier(DefaultRules, domain.ProductGeneric)

// Classify は既定ルールで text を分類します。
func Classify(text string) domain.ProductType {
	return defaultClassifier.Classify(text)
}
