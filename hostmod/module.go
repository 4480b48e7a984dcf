package hostmod

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultModuleName is the import module guests link against.
const DefaultModuleName = "utxt"

// Option configures the host module.
type Option func(*config)

type config struct {
	logger *zap.Logger
	name   string
}

// WithModuleName overrides DefaultModuleName.
func WithModuleName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger for failed guest calls. Defaults to Logger().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) config {
	cfg := config{name: DefaultModuleName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	return cfg
}

// Instantiate registers the host module in r. Guests then import detect,
// transcode, encode_as, count and validate from it; every function works on
// the calling module's exported memory.
func Instantiate(ctx context.Context, r wazero.Runtime, opts ...Option) (api.Module, error) {
	cfg := newConfig(opts)
	builder := r.NewHostModuleBuilder(cfg.name)
	exportFunctions(builder, cfg)
	return builder.Instantiate(ctx)
}

// ExportFunctions adds the host functions to an existing builder, for
// embedders that assemble one host module from several sources. Only the
// logger option applies.
func ExportFunctions(builder wazero.HostModuleBuilder, opts ...Option) {
	exportFunctions(builder, newConfig(opts))
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

type host struct {
	log *zap.Logger
}

func exportFunctions(builder wazero.HostModuleBuilder, cfg config) {
	h := &host{log: cfg.logger}

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.detect), []api.ValueType{i32, i32}, []api.ValueType{i32}).
		WithParameterNames("ptr", "len").
		Export("detect")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.transcode),
			[]api.ValueType{i32, i32, i32, i32, i32, i32}, []api.ValueType{i64}).
		WithParameterNames("in_ptr", "in_len", "from", "to", "out_ptr", "out_cap").
		Export("transcode")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.encodeAs),
			[]api.ValueType{i32, i32, i32, i32, i32, i32}, []api.ValueType{i64}).
		WithParameterNames("in_ptr", "in_len", "to", "flags", "out_ptr", "out_cap").
		Export("encode_as")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.count), []api.ValueType{i32, i32, i32}, []api.ValueType{i64}).
		WithParameterNames("ptr", "len", "enc").
		Export("count")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.validate), []api.ValueType{i32, i32, i32}, []api.ValueType{i64}).
		WithParameterNames("ptr", "len", "enc").
		Export("validate")
}

func (h *host) failed(fn string, err error) {
	if ce := h.log.Check(zapcore.DebugLevel, "guest call failed"); ce != nil {
		ce.Write(zap.String("func", fn), zap.Error(err))
	}
}

func (h *host) detect(_ context.Context, m api.Module, stack []uint64) {
	v, err := hostDetect(WrapMemory(m.Memory()), api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	if err != nil {
		h.failed("detect", err)
	}
	stack[0] = api.EncodeI32(v)
}

func (h *host) transcode(_ context.Context, m api.Module, stack []uint64) {
	v, err := hostTranscode(WrapMemory(m.Memory()),
		api.DecodeU32(stack[0]), api.DecodeU32(stack[1]),
		api.DecodeU32(stack[2]), api.DecodeU32(stack[3]),
		api.DecodeU32(stack[4]), api.DecodeU32(stack[5]))
	if err != nil {
		h.failed("transcode", err)
	}
	stack[0] = api.EncodeI64(v)
}

func (h *host) encodeAs(_ context.Context, m api.Module, stack []uint64) {
	v, err := hostEncodeAs(WrapMemory(m.Memory()),
		api.DecodeU32(stack[0]), api.DecodeU32(stack[1]),
		api.DecodeU32(stack[2]), api.DecodeU32(stack[3]),
		api.DecodeU32(stack[4]), api.DecodeU32(stack[5]))
	if err != nil {
		h.failed("encode_as", err)
	}
	stack[0] = api.EncodeI64(v)
}

func (h *host) count(_ context.Context, m api.Module, stack []uint64) {
	v, err := hostCount(WrapMemory(m.Memory()),
		api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
	if err != nil {
		h.failed("count", err)
	}
	stack[0] = api.EncodeI64(v)
}

func (h *host) validate(_ context.Context, m api.Module, stack []uint64) {
	v, err := hostValidate(WrapMemory(m.Memory()),
		api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))
	if err != nil {
		h.failed("validate", err)
	}
	stack[0] = api.EncodeI64(v)
}
