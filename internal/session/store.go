// Package session はフォーム操作の間だけ保持する作業状態 (domain.Session) を管理します。
// 状態はサーバー側のストアに置き、ブラウザには署名付き Cookie で ID のみを渡します。
package session

import (
	"context"
	"errors"

	"ap-merch-web/internal/domain"
)

// ErrNotFound は指定 ID の状態が存在しない (期限切れを含む) ことを表します。
var ErrNotFound = errors.New("session not found")

// Store はセッション状態の保存先です。
type Store interface {
	Load(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, id string, s domain.Session) error
	Delete(ctx context.Context, id string) error
}
