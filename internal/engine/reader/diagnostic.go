package reader

import (
	"go.trai.ch/weft/internal/adapters/wire"
	"go.trai.ch/weft/internal/core/domain"
)

type diagnosticRecord struct {
	id       string
	message  string
	severity int32
	span     *domain.SourceSpan
}

var spanProperties = propertyMap[domain.SourceSpan]{
	propFilePath: func(r *wire.Reader, span *domain.SourceSpan) error {
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		span.FilePath = v
		return nil
	},
	propAbsoluteIndex: func(r *wire.Reader, span *domain.SourceSpan) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		span.AbsoluteIndex = v
		return nil
	},
	propLineIndex: func(r *wire.Reader, span *domain.SourceSpan) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		span.LineIndex = v
		return nil
	},
	propCharacterIndex: func(r *wire.Reader, span *domain.SourceSpan) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		span.CharacterIndex = v
		return nil
	},
	propLength: func(r *wire.Reader, span *domain.SourceSpan) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		span.Length = v
		return nil
	},
}

var diagnosticProperties = propertyMap[diagnosticRecord]{
	propID: func(r *wire.Reader, rec *diagnosticRecord) error {
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		rec.id = v
		return nil
	},
	propMessage: func(r *wire.Reader, rec *diagnosticRecord) error {
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		rec.message = v
		return nil
	},
	propSeverity: func(r *wire.Reader, rec *diagnosticRecord) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		rec.severity = v
		return nil
	},
	propSpan: func(r *wire.Reader, rec *diagnosticRecord) error {
		var span domain.SourceSpan
		ok, err := r.ReadNilableObject(func(r *wire.Reader) error {
			return decodeProperties(r, spanProperties, &span)
		})
		if err != nil {
			return err
		}
		if ok {
			rec.span = &span
		}
		return nil
	},
}

// ReadDiagnostic decodes one diagnostic object. The descriptor's message producer
// captures the raw wire string and returns it unmodified when the message is
// requested later.
func (s *Session) ReadDiagnostic(r *wire.Reader) (domain.Diagnostic, error) {
	var rec diagnosticRecord
	err := r.ReadObject(func(r *wire.Reader) error {
		return decodeProperties(r, diagnosticProperties, &rec)
	})
	if err != nil {
		return domain.Diagnostic{}, err
	}
	return domain.NewDiagnostic(rec.id, rec.message, domain.Severity(rec.severity), rec.span), nil
}

// ReadDiagnosticsInto appends the diagnostics of an array value into an externally
// owned collection. Unlike ReadDiagnostic, this path interns Id and Message before
// construction: project-level diagnostic collections repeat the same few IDs and
// messages across many spans.
func (s *Session) ReadDiagnosticsInto(r *wire.Reader, out *[]domain.Diagnostic) error {
	_, err := r.ReadArray(func() error {
		var rec diagnosticRecord
		if err := r.ReadObject(func(r *wire.Reader) error {
			return decodeProperties(r, diagnosticProperties, &rec)
		}); err != nil {
			return err
		}
		id := s.intern(rec.id)
		message := s.intern(rec.message)
		*out = append(*out, domain.NewDiagnostic(id, message, domain.Severity(rec.severity), rec.span))
		return nil
	})
	return err
}
