package api

import (
	"context"

	"github.com/ib-77/ropmatch/pkg/rop/check"
	"github.com/ib-77/ropmatch/pkg/rop/config"
)

// Presets builds the standard request chains from one set of settings.
type Presets struct {
	successTest  any
	errorMessage string
	dataField    string
}

// NewPresets reads its settings from cfg; zero fields fall back to
// config.Default.
func NewPresets(cfg config.Presets) Presets {
	def := config.Default().Presets
	p := Presets{
		successTest:  cfg.SuccessTest,
		errorMessage: cfg.ErrorMessage,
		dataField:    cfg.DataField,
	}
	if p.successTest == nil {
		p.successTest = def.SuccessTest
	}
	if p.errorMessage == "" {
		p.errorMessage = def.ErrorMessage
	}
	if p.dataField == "" {
		p.dataField = def.DataField
	}
	return p
}

// WithoutPingWork: call, ok status, parse, check with message, extract data.
func (p Presets) WithoutPingWork(apiCall APICall) Work {
	return Sequence(
		Call(apiCall),
		AssertHTTPOk(),
		ParseBody(),
		Validate(check.If(p.successTest, p.errorMessage)),
		ExtractField(p.dataField),
	)
}

// ReturnDataWork: call, ok status, parse, check failing with the body's
// error property, extract data.
func (p Presets) ReturnDataWork(apiCall APICall) Work {
	return Sequence(
		Call(apiCall),
		AssertHTTPOk(),
		ParseBody(),
		Validate(check.IfOrErrorProperty(p.successTest)),
		ExtractField(p.dataField),
	)
}

// ReturnAllWork is ReturnDataWork without the extraction.
func (p Presets) ReturnAllWork(apiCall APICall) Work {
	return Sequence(
		Call(apiCall),
		AssertHTTPOk(),
		ParseBody(),
		Validate(check.IfOrErrorProperty(p.successTest)),
	)
}

// WithoutPing runs WithoutPingWork through ProcessChain.
func (p Presets) WithoutPing(apiCall APICall, onSuccess func(any), onFailure func(error), onDone func()) func(ctx context.Context, args any) {
	return ProcessChain(p.WithoutPingWork(apiCall), onSuccess, onFailure, onDone)
}

// ReturnData runs ReturnDataWork through ProcessChain.
func (p Presets) ReturnData(apiCall APICall, onSuccess func(any), onFailure func(error), onDone func()) func(ctx context.Context, args any) {
	return ProcessChain(p.ReturnDataWork(apiCall), onSuccess, onFailure, onDone)
}

// ReturnAll runs ReturnAllWork through ProcessChain.
func (p Presets) ReturnAll(apiCall APICall, onSuccess func(any), onFailure func(error), onDone func()) func(ctx context.Context, args any) {
	return ProcessChain(p.ReturnAllWork(apiCall), onSuccess, onFailure, onDone)
}

var defaultPresets = NewPresets(config.Presets{})

// ProcessWithoutPing is the without-ping preset with default settings.
func ProcessWithoutPing(apiCall APICall, onSuccess func(any), onFailure func(error), onDone func()) func(ctx context.Context, args any) {
	return defaultPresets.WithoutPing(apiCall, onSuccess, onFailure, onDone)
}

// ProcessReturnData is the return-data preset with default settings.
func ProcessReturnData(apiCall APICall, onSuccess func(any), onFailure func(error), onDone func()) func(ctx context.Context, args any) {
	return defaultPresets.ReturnData(apiCall, onSuccess, onFailure, onDone)
}

// ProcessReturnAll is the return-all preset with default settings.
func ProcessReturnAll(apiCall APICall, onSuccess func(any), onFailure func(error), onDone func()) func(ctx context.Context, args any) {
	return defaultPresets.ReturnAll(apiCall, onSuccess, onFailure, onDone)
}
