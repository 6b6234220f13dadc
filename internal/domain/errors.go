package domain

import (
	"errors"
	"fmt"
)

// ErrorKind は外部呼び出しラッパーが返すエラーの種別です。
// 表示側はこの種別を見て警告かエラーかを決めます。
type ErrorKind string

const (
	// KindConfig は認証情報や入力の不足。ネットワーク呼び出し前に拒否されます。
	KindConfig ErrorKind = "config"
	// KindTransport は通信エラーや API 呼び出し中の例外です。
	KindTransport ErrorKind = "transport"
	// KindStatus は 200 以外のステータスが返ったケースです。
	KindStatus ErrorKind = "status"
	// KindEmpty は結果が空だったケースです。
	KindEmpty ErrorKind = "empty"
)

// StepError は各ステップの失敗内容を保持する型付きエラーです。
type StepError struct {
	Kind       ErrorKind
	Op         string
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *StepError) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ConfigError は設定不足によるエラーを生成します。
func ConfigError(op, msg string) *StepError {
	return &StepError{Kind: KindConfig, Op: op, Message: msg}
}

// TransportError は通信・API エラーを生成します。
func TransportError(op string, err error) *StepError {
	return &StepError{Kind: KindTransport, Op: op, Err: err}
}

// StatusError は想定外の HTTP ステータスを表すエラーを生成します。
func StatusError(op string, code int, body string) *StepError {
	return &StepError{Kind: KindStatus, Op: op, StatusCode: code, Body: body}
}

// EmptyError は空の結果を表すエラーを生成します。
func EmptyError(op, msg string) *StepError {
	return &StepError{Kind: KindEmpty, Op: op, Message: msg}
}

// KindOf は err の種別を返します。StepError 以外は通信エラーとして扱います。
func KindOf(err error) ErrorKind {
	var se *StepError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindTransport
}

// AsStepError は err を StepError として取り出し、そうでなければ op 付きの通信エラーに包みます。
func AsStepError(op string, err error) *StepError {
	var se *StepError
	if errors.As(err, &se) {
		return se
	}
	return TransportError(op, err)
}
