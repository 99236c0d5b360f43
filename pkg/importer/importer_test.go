package importer_test

import (
	"context"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/labels"
	"github.com/agentstation/strainmap/pkg/logging"
	"github.com/agentstation/strainmap/pkg/reconciler"
	"github.com/agentstation/strainmap/pkg/strains"
	"github.com/agentstation/strainmap/pkg/template"
)

func fixedClock() utc.Time {
	return utc.New(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

type fakeExtractor struct {
	candidate strains.Candidate
	err       error
	calls     int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (strains.Candidate, error) {
	f.calls++
	return f.candidate, f.err
}

type fakeResearcher struct {
	candidates []strains.Candidate
	err        error
	names      []string
}

func (f *fakeResearcher) Research(_ context.Context, names []string) ([]strains.Candidate, error) {
	f.names = names
	return f.candidates, f.err
}

const shortText = "Strain: Blue Dream\nHersteller: Aurora\nTHC: 22%"

func newImporter(t *testing.T, opts ...importer.Option) *importer.Importer {
	t.Helper()
	opts = append([]importer.Option{
		importer.WithClock(fixedClock),
		importer.WithLogger(&logging.Nop),
	}, opts...)
	imp, err := importer.New(opts...)
	require.NoError(t, err)
	return imp
}

func rowByKey(rows []reconciler.ReviewRow, key labels.Key) (reconciler.ReviewRow, bool) {
	for _, row := range rows {
		if row.Key == key {
			return row, true
		}
	}
	return reconciler.ReviewRow{}, false
}

func TestImportLocalOnly(t *testing.T) {
	ext := &fakeExtractor{candidate: strains.Candidate{"name": "Other"}}
	imp := newImporter(t, importer.WithExtractor(ext), importer.WithLLM(false))

	res, err := imp.Import(context.Background(), shortText)
	require.NoError(t, err)

	assert.Zero(t, ext.calls)
	assert.False(t, imp.LLMEnabled())
	assert.Equal(t, importer.StatusLocal, res.Status)
	assert.False(t, res.UsedLLM)
	assert.Nil(t, res.LLM)
	assert.Equal(t, res.Local, res.Merged)
	assert.Equal(t, "2026-03-01T12:00:00Z", res.Merged.CreatedAt)

	require.Len(t, res.Rows, 3)
	for _, row := range res.Rows {
		assert.Equal(t, reconciler.SourceLocal, row.Source)
		assert.Equal(t, reconciler.Medium, row.Confidence)
	}
	assert.Equal(t, 3, res.Summary.Medium)
}

func TestImportMerged(t *testing.T) {
	ext := &fakeExtractor{candidate: strains.Candidate{
		"name":         "Blue Dream",
		"manufacturer": "Aurora Cannabis",
		"thc":          "22%",
		"cbd":          "<1%",
	}}
	imp := newImporter(t, importer.WithExtractor(ext))

	res, err := imp.Import(context.Background(), shortText)
	require.NoError(t, err)

	assert.Equal(t, 1, ext.calls)
	assert.True(t, imp.LLMEnabled())
	assert.Equal(t, importer.StatusMerged, res.Status)
	assert.True(t, res.UsedLLM)
	assert.Empty(t, res.LLMError)
	require.NotNil(t, res.LLM)
	assert.Empty(t, res.LLM.CreatedAt)

	assert.Equal(t, "Aurora", res.Local.Manufacturer)
	assert.Equal(t, "Aurora Cannabis", res.Merged.Manufacturer)
	assert.Equal(t, "<1%", res.Merged.CBD)
	assert.Equal(t, "2026-03-01T12:00:00Z", res.Merged.CreatedAt)

	want := map[labels.Key]struct {
		source     reconciler.Source
		confidence reconciler.Confidence
	}{
		labels.Name:         {reconciler.SourceBoth, reconciler.High},
		labels.Manufacturer: {reconciler.SourceLLM, reconciler.Medium},
		labels.THC:          {reconciler.SourceBoth, reconciler.High},
		labels.CBD:          {reconciler.SourceLLM, reconciler.Medium},
	}
	require.Len(t, res.Rows, len(want))
	for key, w := range want {
		row, ok := rowByKey(res.Rows, key)
		require.True(t, ok, key)
		assert.Equal(t, w.source, row.Source, key)
		assert.Equal(t, w.confidence, row.Confidence, key)
	}
	assert.Equal(t, 2, res.Summary.High)
	assert.Equal(t, 2, res.Summary.Medium)
}

func TestImportLLMFailureFallsBack(t *testing.T) {
	ext := &fakeExtractor{err: errors.NewAPIError("gemini", 503, "overloaded")}
	imp := newImporter(t, importer.WithExtractor(ext))

	res, err := imp.Import(context.Background(), shortText)
	require.NoError(t, err)

	assert.Equal(t, importer.StatusFallback, res.Status)
	assert.False(t, res.UsedLLM)
	assert.Nil(t, res.LLM)
	assert.Contains(t, res.LLMError, "overloaded")
	assert.Equal(t, res.Local, res.Merged)
	for _, row := range res.Rows {
		assert.Equal(t, reconciler.SourceLocal, row.Source)
		assert.Empty(t, row.LLMValue)
	}
}

func TestImportLocalIgnoresExtractor(t *testing.T) {
	ext := &fakeExtractor{candidate: strains.Candidate{"name": "Other"}}
	imp := newImporter(t, importer.WithExtractor(ext))

	res, err := imp.ImportLocal(context.Background(), shortText)
	require.NoError(t, err)
	assert.Zero(t, ext.calls)
	assert.Equal(t, "Blue Dream", res.Merged.Name)
}

func TestImportCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ext := &fakeExtractor{err: context.Canceled}
	imp := newImporter(t, importer.WithExtractor(ext))

	_, err := imp.Import(ctx, shortText)
	assert.ErrorIs(t, err, errors.ErrCanceled)
}

func TestImportEmptyText(t *testing.T) {
	imp := newImporter(t)
	_, err := imp.Import(context.Background(), " \n\t")
	assert.True(t, errors.IsValidationError(err))
}

func TestImportTemplateValidation(t *testing.T) {
	imp := newImporter(t, importer.WithTemplateValidation(true))

	_, err := imp.Import(context.Background(), shortText)
	require.Error(t, err)

	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "Genetik")
	assert.NotContains(t, vErr.Message, "Hersteller")

	res, err := imp.Import(context.Background(), template.Template)
	require.NoError(t, err)
	assert.Empty(t, res.Merged.Name)
}

func TestNewRejectsNilCollaborators(t *testing.T) {
	tests := []struct {
		name string
		opt  importer.Option
	}{
		{"extractor", importer.WithExtractor(nil)},
		{"researcher", importer.WithResearcher(nil)},
		{"logger", importer.WithLogger(nil)},
		{"clock", importer.WithClock(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.New(tt.opt)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

type loggingExtractor struct {
	candidate strains.Candidate
}

func (l loggingExtractor) Extract(ctx context.Context, _ string) (strains.Candidate, error) {
	logging.FromContext(ctx).Info().Msg("extractor called")
	return l.candidate, nil
}

func TestImportTagsLogContext(t *testing.T) {
	tl := logging.NewTestLogger(t)
	imp := newImporter(t,
		importer.WithLogger(tl.Logger),
		importer.WithExtractor(loggingExtractor{candidate: strains.Candidate{"name": "Blue Dream", "cbd": "1%"}}),
	)

	_, err := imp.Import(context.Background(), shortText)
	require.NoError(t, err)

	tl.AssertField(t, "extractor called", "operation", "import")
	tl.AssertField(t, "extractor called", "source", "llm")
	tl.AssertField(t, "Parsed strain text", "source", "local")
	tl.AssertField(t, "Imported strain text", "operation", "import")
	tl.AssertField(t, "Imported strain text", "source", "llm")

	tl.Clear()
	_, err = imp.ImportLocal(context.Background(), shortText)
	require.NoError(t, err)
	tl.AssertField(t, "Imported strain text", "source", "local")
}
