package api

import (
	"encoding/json"
	"testing"
)

func TestNormalizeRawPayload(t *testing.T) {
	method, payload := normalize(json.RawMessage(`{"action":"getVideo","movieId":"m1"}`))
	if method != "" {
		t.Errorf("raw payload has no method, got %q", method)
	}
	if peekAction(payload) != "getVideo" {
		t.Errorf("payload not passed through: %s", payload)
	}
}

func TestNormalizeHTTPWrapper(t *testing.T) {
	method, payload := normalize(json.RawMessage(`{"httpMethod":"POST","body":"{\"action\":\"getProgress\"}"}`))
	if method != "POST" {
		t.Errorf("expected POST, got %q", method)
	}
	if peekAction(payload) != "getProgress" {
		t.Errorf("wrapped body not parsed: %s", payload)
	}
}

func TestNormalizeWrapperObjectBody(t *testing.T) {
	// Some invokers deliver the body pre-parsed rather than string-encoded.
	method, payload := normalize(json.RawMessage(`{"httpMethod":"POST","body":{"action":"tts","text":"x"}}`))
	if method != "POST" {
		t.Errorf("expected POST, got %q", method)
	}
	if peekAction(payload) != "tts" {
		t.Errorf("object body not accepted: %s", payload)
	}
}

func TestNormalizeUnparseableBody(t *testing.T) {
	_, payload := normalize(json.RawMessage(`{"httpMethod":"POST","body":"%%%"}`))
	if peekAction(payload) != "" {
		t.Errorf("expected empty payload for unparseable body, got %s", payload)
	}
}

func TestNormalizeNonObjectEvent(t *testing.T) {
	_, payload := normalize(json.RawMessage(`"just a string"`))
	if peekAction(payload) != "" {
		t.Errorf("expected empty payload, got %s", payload)
	}
}

func TestNormalizeOptionsNoBody(t *testing.T) {
	method, payload := normalize(json.RawMessage(`{"httpMethod":"OPTIONS"}`))
	if method != "OPTIONS" {
		t.Errorf("expected OPTIONS, got %q", method)
	}
	if peekAction(payload) != "" {
		t.Errorf("expected empty payload, got %s", payload)
	}
}

func TestErrorJSONShape(t *testing.T) {
	resp := errorJSON(400, "movieId is required")
	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["error"] != "movieId is required" {
		t.Errorf("unexpected error body: %v", body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("error responses must carry CORS headers")
	}
}
