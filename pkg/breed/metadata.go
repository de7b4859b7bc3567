package breed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/hatchery-labs/breed-client/pkg/cache"
	"github.com/hatchery-labs/breed-client/pkg/metrics"
)

const (
	metadataCacheBudget  = 256
	metadataFetchTimeout = 10 * time.Second

	// maxMetadataSize bounds the response body read from arbitrary
	// metadata hosts.
	maxMetadataSize = 1 << 20
)

// NFTAttribute is a single trait on an NFT's off-chain metadata.
type NFTAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// NFTMetadata is the off-chain metadata document referenced by an NFT.
type NFTMetadata struct {
	Name       string         `json:"name"`
	Symbol     string         `json:"symbol"`
	Image      string         `json:"image"`
	Attributes []NFTAttribute `json:"attributes"`
}

// MetadataFetcher loads off-chain NFT metadata documents.
type MetadataFetcher interface {
	GetMetadata(ctx context.Context, uri string) (*NFTMetadata, error)
}

type httpMetadataFetcher struct {
	client *http.Client
	cache  cache.Cache
}

// NewMetadataFetcher returns a fetcher that retrieves metadata over
// HTTP and caches documents by URI.
func NewMetadataFetcher() MetadataFetcher {
	return &httpMetadataFetcher{
		client: &http.Client{
			Timeout: metadataFetchTimeout,
		},
		cache: cache.NewCache(metadataCacheBudget),
	}
}

func (f *httpMetadataFetcher) GetMetadata(ctx context.Context, uri string) (*NFTMetadata, error) {
	tracer := metrics.TraceMethodCall(ctx, "httpMetadataFetcher", "GetMetadata")
	defer tracer.End()

	if cached, ok := f.cache.Retrieve(uri); ok {
		return cached.(*NFTMetadata), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create metadata request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to fetch metadata")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Errorf("unexpected metadata response status: %d", resp.StatusCode)
		tracer.OnError(err)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataSize))
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to read metadata response")
	}

	var metadata NFTMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal metadata")
	}

	_ = f.cache.Insert(uri, &metadata, 1)

	return &metadata, nil
}

// DisplayName renders a user-facing label for an NFT.
func (m *NFTMetadata) DisplayName() string {
	if m.Symbol == "" {
		return m.Name
	}
	return fmt.Sprintf("%s (%s)", m.Name, m.Symbol)
}
