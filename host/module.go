package host

import (
	"context"
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	temporalcapi "github.com/wippyai/temporal-capi"
	"github.com/wippyai/temporal-capi/capi"
	"github.com/wippyai/temporal-capi/errors"
)

const (
	// ModuleName is the import module guests link against.
	ModuleName = "temporal:capi"
	// Version is the ABI version. Layouts and export signatures are fixed
	// within a version.
	Version = "0.1.0"
)

// Options configures a Module.
type Options struct {
	// Surface serves the exports. When nil a Surface is created from
	// SurfaceOptions and closed with the Module.
	Surface        *capi.Surface
	SurfaceOptions capi.Options

	// Diagnostics attaches an owned Text message handle to every non-OK
	// status record. The guest must release it.
	Diagnostics bool

	// Logger defaults to the package Logger.
	Logger *zap.Logger

	// ModuleName overrides the import module name.
	ModuleName string

	// MemoryName is the guest export holding linear memory.
	MemoryName string
}

// Function describes one export.
type Function struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// Signature renders the export as "name(i32, i64, ...) -> i32".
func (f Function) Signature() string {
	s := f.Name + "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(p)
	}
	s += ")"
	for _, r := range f.Results {
		s += " -> " + api.ValueTypeName(r)
	}
	return s
}

// Module is the host side of the boundary: a Surface and its export table.
type Module struct {
	surface     *capi.Surface
	owned       bool
	exports     map[string]binding
	name        string
	memoryName  string
	diagnostics bool
	log         *zap.Logger
}

// New creates a Module.
func New(opts Options) (*Module, error) {
	if opts.Logger == nil {
		opts.Logger = Logger()
	}
	if opts.ModuleName == "" {
		opts.ModuleName = ModuleName
	}
	if opts.MemoryName == "" {
		opts.MemoryName = "memory"
	}

	m := &Module{
		surface:     opts.Surface,
		name:        opts.ModuleName,
		memoryName:  opts.MemoryName,
		diagnostics: opts.Diagnostics,
		log:         opts.Logger,
	}
	if m.surface == nil {
		if opts.SurfaceOptions.Logger == nil {
			opts.SurfaceOptions.Logger = opts.Logger
		}
		s, err := capi.NewSurface(opts.SurfaceOptions)
		if err != nil {
			return nil, err
		}
		m.surface = s
		m.owned = true
	}
	m.exports = exports(m.surface)
	return m, nil
}

// Surface returns the Surface serving the exports.
func (m *Module) Surface() *capi.Surface {
	return m.surface
}

// Name returns the import module name.
func (m *Module) Name() string {
	return m.name
}

// Functions lists the exports sorted by name. Params include the trailing
// status_ptr.
func (m *Module) Functions() []Function {
	out := make([]Function, 0, len(m.exports))
	for name, b := range m.exports {
		out = append(out, Function{
			Name:    name,
			Params:  append(append([]api.ValueType(nil), b.params...), i32),
			Results: []api.ValueType{i32},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Instantiate registers the exports with r as a host module.
func (m *Module) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(m.name)
	for _, f := range m.Functions() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(m.handler(f.Name, m.exports[f.Name]), f.Params, f.Results).
			WithParameterNames(paramNames(f)...).
			Export(f.Name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(m.name, "", err)
	}
	m.log.Debug("host module instantiated",
		zap.String("module", m.name),
		zap.Int("exports", len(m.exports)))
	return mod, nil
}

// Call runs an export against mem without a wasm caller. params exclude
// status_ptr, which is passed separately.
func (m *Module) Call(ctx context.Context, mem temporalcapi.Memory, name string, statusPtr uint32, params ...uint64) (capi.Code, error) {
	b, ok := m.exports[name]
	if !ok {
		return capi.InvalidArgument, fmt.Errorf("host: unknown export %q", name)
	}
	if len(params) != len(b.params) {
		return capi.InvalidArgument, fmt.Errorf("host: %s takes %d parameters, got %d", name, len(b.params), len(params))
	}
	stack := append(append(make([]uint64, 0, len(params)+1), params...), api.EncodeU32(statusPtr))
	return m.invoke(ctx, mem, name, b, stack), nil
}

// Close closes a Surface the Module created.
func (m *Module) Close() error {
	if m.owned {
		return m.surface.Close()
	}
	return nil
}

// Instantiate creates a Module and registers it with r.
func Instantiate(ctx context.Context, r wazero.Runtime, opts Options) (*Module, api.Module, error) {
	m, err := New(opts)
	if err != nil {
		return nil, nil, err
	}
	mod, err := m.Instantiate(ctx, r)
	if err != nil {
		_ = m.Close()
		return nil, nil, err
	}
	return m, mod, nil
}

func (m *Module) handler(name string, b binding) api.GoModuleFunc {
	return func(ctx context.Context, caller api.Module, stack []uint64) {
		var mem temporalcapi.Memory
		if caller != nil {
			if exported := caller.ExportedMemory(m.memoryName); exported != nil {
				mem = WrapMemory(exported)
			}
		}
		code := m.invoke(ctx, mem, name, b, stack)
		stack[0] = api.EncodeU32(uint32(code))
	}
}

// invoke runs b over stack, whose last slot is status_ptr, and writes the
// status record.
func (m *Module) invoke(ctx context.Context, mem temporalcapi.Memory, name string, b binding, stack []uint64) (code capi.Code) {
	statusPtr := api.DecodeU32(stack[len(b.params)])
	err := m.run(ctx, mem, name, b, stack)
	code = capi.CodeOf(err)
	if err != nil {
		m.log.Debug("export failed",
			zap.String("export", name),
			zap.Stringer("code", code),
			zap.Error(err))
	}
	if statusPtr != 0 && mem != nil {
		m.writeStatus(mem, name, statusPtr, err)
	}
	return code
}

func (m *Module) run(ctx context.Context, mem temporalcapi.Memory, name string, b binding, stack []uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Internal(fmt.Errorf("panic in %s: %v", name, r))
			m.log.Error("recovered panic in export", zap.String("export", name), zap.Any("panic", r))
		}
	}()
	if mem == nil {
		return errors.New(errors.PhaseBoundary, errors.KindInvalidArgument).
			Detail("caller exports no memory %q", m.memoryName).Build()
	}
	return b.fn(&call{ctx: ctx, mem: mem, s: m.surface, stack: stack})
}

func (m *Module) writeStatus(mem temporalcapi.Memory, name string, ptr uint32, err error) {
	st := capi.StatusOf(err)
	flat := capi.FlatStatus{
		Code:        uint32(st.Code),
		ParseOffset: st.Offset,
		Required:    st.Required,
	}
	if err != nil && m.diagnostics {
		h, terr := m.surface.TextNew(st.Message)
		if terr == nil {
			flat.Message = uint32(h)
		}
	}
	if werr := capi.WriteStatus(mem, ptr, flat); werr != nil {
		if flat.Message != 0 {
			_ = m.surface.Discard(capi.Handle(flat.Message))
		}
		m.log.Warn("status record not delivered",
			zap.String("export", name),
			zap.Uint32("status_ptr", ptr),
			zap.Error(werr))
	}
}

func paramNames(f Function) []string {
	names := make([]string, len(f.Params))
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}
	names[len(names)-1] = "status_ptr"
	return names
}
