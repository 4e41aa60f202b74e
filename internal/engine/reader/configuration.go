package reader

import (
	"go.trai.ch/weft/internal/adapters/wire"
	"go.trai.ch/weft/internal/core/domain"
)

type configurationRecord struct {
	session *Session
	config  domain.Configuration
}

var configurationProperties = propertyMap[configurationRecord]{
	propLanguageVersion: func(r *wire.Reader, rec *configurationRecord) error {
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		rec.config.LanguageVersion = v
		return nil
	},
	propConfigurationName: func(r *wire.Reader, rec *configurationRecord) error {
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		rec.config.ConfigurationName = v
		return nil
	},
	propExtensions: func(r *wire.Reader, rec *configurationRecord) error {
		_, err := r.ReadArray(func() error {
			ext, err := rec.session.readExtensionValue(r)
			if err != nil {
				return err
			}
			rec.config.Extensions = append(rec.config.Extensions, ext)
			return nil
		})
		return err
	},
}

// ReadExtension decodes one extension object. ExtensionName is its single required
// field; its absence is malformed input.
func (s *Session) ReadExtension(r *wire.Reader) (domain.Extension, error) {
	return s.readExtensionValue(r)
}

func (s *Session) readExtensionValue(r *wire.Reader) (domain.Extension, error) {
	var ext domain.Extension
	err := r.ReadObject(func(r *wire.Reader) error {
		name, err := r.ReadRequiredString(propExtensionName)
		if err != nil {
			return err
		}
		ext.ExtensionName = name
		return nil
	})
	return ext, err
}

// ReadConfiguration decodes a configuration object. Configuration decoding is a
// direct construction; no cache is involved.
func (s *Session) ReadConfiguration(r *wire.Reader) (domain.Configuration, error) {
	rec := configurationRecord{session: s}
	err := r.ReadObject(func(r *wire.Reader) error {
		return decodeProperties(r, configurationProperties, &rec)
	})
	return rec.config, err
}

func (s *Session) readNilableConfiguration(r *wire.Reader) (domain.Configuration, bool, error) {
	rec := configurationRecord{session: s}
	ok, err := r.ReadNilableObject(func(r *wire.Reader) error {
		return decodeProperties(r, configurationProperties, &rec)
	})
	return rec.config, ok, err
}
