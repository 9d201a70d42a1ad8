package visibility

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/starwatch/internal/failure"
	"github.com/yegors/starwatch/pkg/logger"
)

type fakeRenderer struct {
	document string
	err      error
	gotURL   string
}

func (f *fakeRenderer) Render(_ context.Context, url string) (string, error) {
	f.gotURL = url
	return f.document, f.err
}

func TestScraperRendersConfiguredURL(t *testing.T) {
	r := &fakeRenderer{document: pageHTML(`<div id="goodTimings">` +
		entryHTML("9:15 PM, 16 Oct 2026", "Bright", "Overhead", "NW", "SE") +
		`</div><div id="avgTimingsError"></div>`)}
	s := NewScraper(r, "https://findstarlink.com/#3117735;3", madrid, logger.NewNop())

	page, err := s.Scrape(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "https://findstarlink.com/#3117735;3", r.gotURL)
	assert.Equal(t, s.URL(), r.gotURL)
	require.Len(t, page.Good, 1)
	assert.Equal(t, "NW-SE", page.Good[0].Direction)
}

func TestScraperPropagatesRenderFailure(t *testing.T) {
	r := &fakeRenderer{err: failure.New(failure.PageLoad, "loading page", errors.New("net::ERR_NAME_NOT_RESOLVED"))}
	s := NewScraper(r, "https://findstarlink.com/", madrid, logger.NewNop())

	_, err := s.Scrape(context.Background(), now)
	require.Error(t, err)
	assert.Equal(t, failure.PageLoad, failure.KindOf(err))
	assert.True(t, strings.HasPrefix(failure.Message(err), "An unexpected error occurred: "))
}
