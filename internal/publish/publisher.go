package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"qrfolio-backend/internal/shared/storage/object"
)

const (
	filePrefix  = "portfolio_"
	fileSuffix  = ".html"
	contentType = "text/html; charset=utf-8"
)

var (
	ErrStorage   = errors.New("failed to store microsite")
	ErrNoBaseURL = errors.New("public base url could not be resolved")
)

// Microsite is a published page.
type Microsite struct {
	FileName    string
	HTMLContent string
	PublicURL   string
}

// Publisher writes microsites to the public root of a content store.
type Publisher struct {
	Store    object.Store
	Resolver BaseURLResolver
	Now      func() time.Time
	// Suffix returns the random part of a file name; overridable in tests.
	Suffix func() string
}

// NewPublisher constructs a Publisher.
func NewPublisher(store object.Store, resolver BaseURLResolver) *Publisher {
	return &Publisher{Store: store, Resolver: resolver, Now: time.Now, Suffix: randomSuffix}
}

// Publish stores htmlContent under portfolio_<unix-ms>_<rand>.html and returns
// the public URL resolved for origin.
func (p *Publisher) Publish(ctx context.Context, htmlContent string, origin Origin) (Microsite, error) {
	base := ""
	if p.Resolver != nil {
		base = p.Resolver.BaseURL(origin)
	}
	if base == "" {
		return Microsite{}, ErrNoBaseURL
	}

	fileName := p.fileName()
	if _, err := p.Store.Put(ctx, fileName, contentType, strings.NewReader(htmlContent)); err != nil {
		return Microsite{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return Microsite{
		FileName:    fileName,
		HTMLContent: htmlContent,
		PublicURL:   JoinURL(base, fileName),
	}, nil
}

// IsMicrositeName reports whether name follows the publisher's naming scheme.
func IsMicrositeName(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix) && !strings.Contains(name, "/")
}

// JoinURL joins a base URL and a store key with exactly one slash.
func JoinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func (p *Publisher) fileName() string {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	suffix := randomSuffix
	if p.Suffix != nil {
		suffix = p.Suffix
	}
	return fmt.Sprintf("%s%d_%s%s", filePrefix, now().UnixMilli(), suffix(), fileSuffix)
}

func randomSuffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
