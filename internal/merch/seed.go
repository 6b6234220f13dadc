package merch

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
)

// SeedRoller は 3 つの固定単語リストからランダムなシード文を組み立てます。
type SeedRoller struct {
	adjectives []string
	audiences  []string
	objects    []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeedRoller は単語リストと乱数ソースから SeedRoller を生成します。
// src が nil の場合は実行ごとに異なるソースを使用します。
func NewSeedRoller(adjectives, audiences, objects []string, src rand.Source) (*SeedRoller, error) {
	if len(adjectives) == 0 || len(audiences) == 0 || len(objects) == 0 {
		return nil, errors.New("seed word lists must not be empty")
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &SeedRoller{
		adjectives: adjectives,
		audiences:  audiences,
		objects:    objects,
		rnd:        rand.New(src),
	}, nil
}

// Roll は「形容詞 + 対象者 + モノ」の形式でシード文を返します。
func (r *SeedRoller) Roll() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return strings.Join([]string{
		r.adjectives[r.rnd.IntN(len(r.adjectives))],
		r.audiences[r.rnd.IntN(len(r.audiences))],
		r.objects[r.rnd.IntN(len(r.objects))],
	}, " ")
}
