package log

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParsedLevel(t *testing.T) {
	assert.Equal(t, "info", (&Config{}).parsedLevel())
	assert.Equal(t, "debug", (&Config{Level: "TRACE"}).parsedLevel())
	assert.Equal(t, "warn", (&Config{Level: "warn"}).parsedLevel())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	_, _, err := InitLoggerWithWriteSyncer(&Config{Level: "loud"}, zapcore.AddSync(os.Stderr))
	assert.Error(t, err)
}

func TestInitTestLogger(t *testing.T) {
	lg, props, err := InitTestLogger(t, &Config{Level: "debug", Format: FormatJSON})
	require.NoError(t, err)
	require.NotNil(t, props)
	assert.Equal(t, zapcore.DebugLevel, props.Level.Level())

	old, oldProps := L(), _globalP.Load().(*ZapProperties)
	ReplaceGlobals(lg, props)
	defer ReplaceGlobals(old, oldProps)

	assert.Same(t, lg, L())
	SetLevel(zapcore.WarnLevel)
	assert.Equal(t, zapcore.WarnLevel, GetLevel())
	Info("dropped by level")
	Warn("kept", zap.Int("n", 1))
}

func TestFileLog(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Level: "info",
		File: FileLogConfig{
			RootPath: dir,
			Filename: "messgen.log",
		},
	}
	lg, _, err := InitLogger(cfg)
	require.NoError(t, err)
	lg.Info("frame decoded", FieldTypeID(7), FieldFrameSize(2))
	require.NoError(t, lg.Sync())

	data, err := os.ReadFile(filepath.Join(dir, "messgen.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame decoded")
	assert.Contains(t, string(data), "typeID")
	assert.Equal(t, defaultLogMaxSize, cfg.File.MaxSize)
}

func TestFileLogRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	_, _, err := InitLogger(&Config{File: FileLogConfig{RootPath: dir, Filename: "sub"}})
	assert.Error(t, err)
}

func TestCtxLogger(t *testing.T) {
	var nilCtx context.Context
	assert.NotNil(t, Ctx(nilCtx))
	ctx := WithModule(context.Background(), "walker")
	l := Ctx(ctx)
	require.NotNil(t, l)
	assert.Same(t, l, Ctx(ctx))

	ctx2 := WithFields(ctx, FieldComponent("scanner"))
	assert.NotSame(t, l, Ctx(ctx2))
}

func TestRatedLogger(t *testing.T) {
	group := fmt.Sprintf("test-rated-%d", time.Now().UnixNano())
	l := With(FieldModule("test")).WithRateGroup(group, 0, 1)
	assert.True(t, l.RatedWarn(1, "first"))
	assert.False(t, l.RatedWarn(1, "second"))

	child := l.With(zap.String("k", "v"))
	assert.False(t, child.RatedInfo(1, "inherits group"))

	assert.True(t, With().RatedDebug(1, "nop limiter never drops"))
}

func TestBinder(t *testing.T) {
	var b Binder
	assert.NotNil(t, b.Logger())

	l := With(FieldComponent("codec"))
	b.SetLogger(l)
	assert.Same(t, l, b.Logger())
}
