package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxTitleLength は Webhook に送るタイトルの最大文字数です。
const MaxTitleLength = 100

var payloadValidator = validator.New()

// Payload は自動化 Webhook に送信される JSON オブジェクトそのものです。
type Payload struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	Price       string `json:"price" validate:"required,numeric"`
	Category    string `json:"category" validate:"required"`
}

// NewPayload はセッションの内容と解決済みの価格から Payload を組み立てます。
func NewPayload(idea, imageURL string, productType ProductType, price string) Payload {
	return Payload{
		Title:       TitleFromIdea(idea),
		Description: idea,
		ImageURL:    imageURL,
		Price:       price,
		Category:    CategoryFromType(productType),
	}
}

// Validate は送信前に Payload の必須項目と形式を検証します。
func (p Payload) Validate() error {
	return payloadValidator.Struct(p)
}

// TitleFromIdea はアイデアの 1 行目を MaxTitleLength 文字に切り詰めて返します。
func TitleFromIdea(idea string) string {
	line, _, _ := strings.Cut(idea, "\n")
	line = strings.TrimRight(line, "\r")
	if utf8.RuneCountInString(line) <= MaxTitleLength {
		return line
	}
	return string([]rune(line)[:MaxTitleLength])
}

// CategoryFromType は商品タイプの先頭 1 文字を大文字にして返します。
func CategoryFromType(t ProductType) string {
	s := string(t)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
