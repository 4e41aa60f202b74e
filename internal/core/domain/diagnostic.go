package domain

// Severity mirrors the producer's diagnostic severity scale.
type Severity int32

const (
	// SeverityError indicates the descriptor is unusable.
	SeverityError Severity = iota
	// SeverityWarning indicates a recoverable problem.
	SeverityWarning
)

// SourceSpan locates a diagnostic in the originating document. A nil span means the
// diagnostic is not tied to a source location.
type SourceSpan struct {
	FilePath       string
	AbsoluteIndex  int32
	LineIndex      int32
	CharacterIndex int32
	Length         int32
}

// MessageValue defers message production until a consumer asks for it. A message is
// either a constant captured from the wire or computed on demand.
type MessageValue struct {
	constant string
	compute  func() string
}

// ConstantMessage wraps an already-materialized message string.
func ConstantMessage(s string) MessageValue {
	return MessageValue{constant: s}
}

// ComputedMessage wraps a function evaluated each time the message is requested.
func ComputedMessage(fn func() string) MessageValue {
	return MessageValue{compute: fn}
}

// Message produces the message text.
func (m MessageValue) Message() string {
	if m.compute != nil {
		return m.compute()
	}
	return m.constant
}

// DiagnosticDescriptor is the reusable identity of a diagnostic: a stable ID, a
// deferred message producer, and a severity.
type DiagnosticDescriptor struct {
	ID       string
	Message  MessageValue
	Severity Severity
}

// Diagnostic is a DiagnosticDescriptor applied to a source span.
type Diagnostic struct {
	Descriptor DiagnosticDescriptor
	Span       *SourceSpan
}

// NewDiagnostic builds a diagnostic with a constant message.
func NewDiagnostic(id, message string, severity Severity, span *SourceSpan) Diagnostic {
	return Diagnostic{
		Descriptor: DiagnosticDescriptor{
			ID:       id,
			Message:  ConstantMessage(message),
			Severity: severity,
		},
		Span: span,
	}
}
