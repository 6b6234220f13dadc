package domain

// NoticeLevel は画面に表示するメッセージの重要度です。
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice はアクション実行後に画面へ表示する 1 行のメッセージです。
type Notice struct {
	Level   NoticeLevel
	Message string
}
