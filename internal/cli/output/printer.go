// Package output は merchctl の端末出力を整形します。
package output

import (
	"fmt"
	"io"
	"os"

	"ap-merch-web/internal/domain"

	"github.com/fatih/color"
)

// Printer は端末への整形出力を担当します
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// ResolveColors は NO_COLOR が設定されている場合や TERM=dumb の場合に色を無効にします。
func ResolveColors(noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: useColors}
}

// Info は情報メッセージを表示します
func (p *Printer) Info(format string, args ...any) {
	p.line(p.out, color.FgCyan, "", format, args...)
}

// Success は成功メッセージを表示します
func (p *Printer) Success(format string, args ...any) {
	p.line(p.out, color.FgGreen, "[OK] ", format, args...)
}

// Warning は警告を標準エラーに表示します
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.err, color.FgYellow, "[WARN] ", format, args...)
}

// Error はエラーを標準エラーに表示します
func (p *Printer) Error(format string, args ...any) {
	p.line(p.err, color.FgRed, "[ERROR] ", format, args...)
}

// Notice はステップの通知をレベルに応じて表示します。
func (p *Printer) Notice(n domain.Notice) {
	switch n.Level {
	case domain.NoticeSuccess:
		p.Success("%s", n.Message)
	case domain.NoticeWarning:
		p.Warning("%s", n.Message)
	case domain.NoticeError:
		p.Error("%s", n.Message)
	default:
		p.Info("%s", n.Message)
	}
}

// Header は見出しを表示します
func (p *Printer) Header(title string) {
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", title)
}

// Print は装飾なしで表示します
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Writer は表の出力先となる標準出力を返します。
func (p *Printer) Writer() io.Writer {
	return p.out
}

// 色付きの場合は接頭辞を付けず、色でレベルを表します。
func (p *Printer) line(w io.Writer, attr color.Attribute, prefix, format string, args ...any) {
	if p.useColors {
		color.New(attr).Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}
