package log

import "go.uber.org/zap/zapcore"

const redactedValue = "[REDACTED]"

// RedactFieldsCore masks the values of fields with matching keys before the
// entry reaches the wrapped core. Matching is exact on the field key; use it
// for credential-bearing fields such as authorization headers or api keys.
func RedactFieldsCore(core zapcore.Core, keys ...string) zapcore.Core {
	return redactFieldsCore{
		Core: core,
		keys: makeKeySet(keys),
	}
}

type redactFieldsCore struct {
	zapcore.Core
	keys map[string]struct{}
}

func (c redactFieldsCore) With(fields []zapcore.Field) zapcore.Core {
	return redactFieldsCore{
		Core: c.Core.With(redactFields(fields, c.keys)),
		keys: c.keys,
	}
}

func (c redactFieldsCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c redactFieldsCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, redactFields(fields, c.keys))
}

func makeKeySet(keys []string) map[string]struct{} {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

func redactFields(fields []zapcore.Field, keys map[string]struct{}) []zapcore.Field {
	if len(fields) == 0 || len(keys) == 0 {
		return fields
	}
	out := make([]zapcore.Field, len(fields))
	copy(out, fields)
	for i := range out {
		if _, ok := keys[out[i].Key]; ok {
			out[i] = zapcore.Field{Key: out[i].Key, Type: zapcore.StringType, String: redactedValue}
		}
	}
	return out
}
