package export

import (
	"go.uber.org/zap"

	"github.com/broady/objcbridge/objcgen/ir"
)

// Warning codes reported during a pass.
const (
	CodeModeling     = "modeling"
	CodeMember       = "member"
	CodeThrows       = "throws"
	CodeNotThrowable = "not_throwable"
)

// Reporter receives non-fatal modeling warnings. Reporting never stops a
// pass.
type Reporter interface {
	// Report records a warning that is not tied to a declaration.
	Report(msg string)

	// ReportMember records a warning about a specific declaration.
	ReportMember(d ir.Decl, msg string)
}

// Diagnostics is the default Reporter. It collects warnings and logs them.
type Diagnostics struct {
	Warnings []ir.Warning

	log *zap.Logger
}

// NewDiagnostics returns a Diagnostics logging to log; a nil log uses the
// package logger.
func NewDiagnostics(log *zap.Logger) *Diagnostics {
	if log == nil {
		log = Logger()
	}
	return &Diagnostics{log: log}
}

// Report implements Reporter.
func (d *Diagnostics) Report(msg string) {
	d.add(ir.Warning{Code: CodeModeling, Message: msg})
}

// ReportMember implements Reporter.
func (d *Diagnostics) ReportMember(decl ir.Decl, msg string) {
	d.add(memberWarning(CodeMember, decl, msg))
}

func (d *Diagnostics) add(w ir.Warning) {
	d.Warnings = append(d.Warnings, w)
	fields := []zap.Field{zap.String("code", w.Code)}
	if w.Decl != "" {
		fields = append(fields, zap.String("decl", w.Decl))
	}
	if w.Source != nil {
		fields = append(fields, zap.String("file", w.Source.File), zap.Int("line", w.Source.Line))
	}
	d.log.Warn(w.Message, fields...)
}

func memberWarning(code string, decl ir.Decl, msg string) ir.Warning {
	w := ir.Warning{Code: code, Message: msg, Decl: decl.QualifiedName()}
	if src := decl.Src(); !src.IsZero() {
		w.Source = &src
	}
	return w
}

// codedReporter is implemented by reporters that keep warning codes.
type codedReporter interface {
	reportCoded(code string, decl ir.Decl, msg string)
}

func (d *Diagnostics) reportCoded(code string, decl ir.Decl, msg string) {
	d.add(memberWarning(code, decl, msg))
}

// reportMember routes a coded member warning to r, falling back to
// ReportMember for reporters that do not keep codes.
func reportMember(r Reporter, code string, decl ir.Decl, msg string) {
	if cr, ok := r.(codedReporter); ok {
		cr.reportCoded(code, decl, msg)
		return
	}
	r.ReportMember(decl, msg)
}
