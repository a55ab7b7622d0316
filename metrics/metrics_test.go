package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motion2constatus/motion"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.Translated("a.conf", "a-constatus.cfg")
	m.Translated("b.conf", "b-constatus.cfg")
	m.Failed("c.conf", errors.Wrap(motion.ErrMalformedLine, "c.conf:3"))
	m.RunFinished(time.Now().Add(-time.Second), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.translated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("malformed_line")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.duration), 1.0)
	assert.Greater(t, testutil.ToFloat64(m.lastSuccess), 0.0)
}

func TestRunFinishedFailureKeepsLastSuccess(t *testing.T) {
	m := New()
	m.RunFinished(time.Now(), errors.New("boom"))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.lastSuccess))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Translated("a.conf", "a-constatus.cfg")

	p := filepath.Join(t.TempDir(), "motion2constatus.prom")
	require.NoError(t, m.WriteTextfile(p))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "motion2constatus_files_translated_total 1")
}
