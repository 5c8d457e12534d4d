// Package slack owns the inbound slash-command surface: decoding the
// form-encoded body Slack posts, and routing the command to a handler.
package slack

import (
	"net/url"
	"strings"
)

// Slack form fields this service reads; everything else in the payload is
// carried in Params but ignored.
const (
	ParamCommand  = "command"
	ParamText     = "text"
	ParamUserName = "user_name"
)

// ParsedCommand is the per-request view of a slash-command body. It lives
// for one dispatch and is never persisted.
type ParsedCommand struct {
	Command  string
	UserName string
	Text     string
	Params   map[string]string
}

// ParseForm decodes a raw application/x-www-form-urlencoded body into a
// key-value map. Pairs are split on '&' and on the first '='; key and value
// are percent-decoded, then every '+' in the value becomes a space (an
// encoded %2B included), and both sides are trimmed. When the same key
// appears twice the last occurrence wins. Malformed pairs are skipped and
// empty input yields an empty map; missing keys are the caller's
// responsibility.
func ParseForm(body string) map[string]string {
	params := make(map[string]string)
	if body == "" {
		return params
	}

	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")

		// PathUnescape for keys: percent-decode only, '+' stays literal
		key, err := url.PathUnescape(rawKey)
		if err != nil {
			continue
		}
		// values: percent-decode first, then fold every '+' to a space
		value, err := url.PathUnescape(rawValue)
		if err != nil {
			continue
		}
		value = strings.ReplaceAll(value, "+", " ")

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		params[key] = strings.TrimSpace(value)
	}

	return params
}

// ParseCommand projects the fields the dispatcher cares about out of a raw
// body.
func ParseCommand(body string) ParsedCommand {
	params := ParseForm(body)
	return ParsedCommand{
		Command:  params[ParamCommand],
		UserName: params[ParamUserName],
		Text:     params[ParamText],
		Params:   params,
	}
}
