package score

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Result is the outcome of normalizing a raw score value: either a
// non-negative integer or an explicit unavailable marker. It is never a
// string and never carries the raw structured value.
type Result struct {
	value     int
	available bool
}

// Of wraps a parsed integer. Negative values are treated as unavailable
// because a basketball score can never go below zero.
func Of(v int) Result {
	if v < 0 {
		return Unavailable()
	}
	return Result{value: v, available: true}
}

// Unavailable marks a score that could not be normalized.
func Unavailable() Result { return Result{} }

// Value returns the normalized score, or zero when unavailable.
func (r Result) Value() int { return r.value }

// Available reports whether a score was successfully normalized.
func (r Result) Available() bool { return r.available }

// String renders the score for display. Unavailable scores render as "0"
// so the scorebug never shows raw upstream text.
func (r Result) String() string {
	return strconv.Itoa(r.value)
}

var defaultKeys = []string{"value", "displayValue"}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Normalizer converts raw score values of unknown shape into a Result.
// The upstream feed is inconsistent: scores arrive as JSON numbers, plain
// numeric strings, or strings that themselves encode a JSON object. Each
// tier is tried in order and the first match wins.
type Normalizer struct {
	keys   []string
	logger *slog.Logger
}

// NewNormalizer constructs a Normalizer. keys override the recognized
// numeric field names looked up inside embedded JSON objects; when empty,
// "value" and "displayValue" are used.
func NewNormalizer(logger *slog.Logger, keys ...string) *Normalizer {
	if len(keys) == 0 {
		keys = defaultKeys
	}
	return &Normalizer{keys: keys, logger: logger}
}

// Parse normalizes one raw JSON value into a Result. It never fails: every
// input shape degrades to a lower tier, ending at Unavailable. Tier traces
// are emitted at debug level and do not affect the returned value.
func (n *Normalizer) Parse(raw json.RawMessage) Result {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		n.trace("empty", "", Unavailable())
		return Unavailable()
	}

	// Tier 1: the token is already a JSON number.
	if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
		res := Of(int(f))
		n.trace("numeric", string(trimmed), res)
		return res
	}

	s := unquote(trimmed)
	s = strings.TrimSpace(s)
	if s == "" {
		n.trace("empty", "", Unavailable())
		return Unavailable()
	}

	// Tier 2: a plain numeric string ("102", "98.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		res := Of(int(f))
		n.trace("numeric-string", s, res)
		return res
	}

	// Tier 3: a string that itself encodes a JSON object or array.
	if s[0] == '{' || s[0] == '[' {
		if res, ok := n.parseEmbedded(s); ok {
			n.trace("embedded-json", s, res)
			return res
		}
		n.trace("embedded-json", s, Unavailable())
	}

	// Tier 4: first contiguous digit run anywhere in the string.
	if digits := digitRun.FindString(s); digits != "" {
		v, err := strconv.Atoi(digits)
		if err == nil {
			res := Of(v)
			n.trace("digit-run", s, res)
			return res
		}
	}

	n.trace("exhausted", s, Unavailable())
	return Unavailable()
}

// parseEmbedded decodes an embedded JSON document and looks up the first
// recognized numeric field. Arrays are probed at their first element.
func (n *Normalizer) parseEmbedded(s string) (Result, bool) {
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return Unavailable(), false
	}
	if arr, ok := doc.([]any); ok {
		if len(arr) == 0 {
			return Unavailable(), false
		}
		doc = arr[0]
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Unavailable(), false
	}
	for _, key := range n.keys {
		v, present := obj[key]
		if !present {
			continue
		}
		switch val := v.(type) {
		case float64:
			return Of(int(val)), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				return Of(int(f)), true
			}
		}
	}
	return Unavailable(), false
}

func unquote(raw []byte) string {
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

func (n *Normalizer) trace(tier, value string, res Result) {
	if n.logger == nil {
		return
	}
	if len(value) > 64 {
		value = value[:64]
	}
	n.logger.Debug("score normalization tier",
		slog.String("tier", tier),
		slog.String("value", value),
		slog.Bool("available", res.Available()),
		slog.Int("score", res.Value()),
	)
}
