package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

// Envelope is the response wrapper for every JSON endpoint.
// Ok carries the logical outcome; the HTTP status is always 200.
type Envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// maxBodyBytes caps request bodies at 100 KiB.
const maxBodyBytes = 100 << 10

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, Envelope{OK: true, Message: msg})
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, Envelope{OK: false, Error: msg})
}

// decodeBody decodes the JSON body into v. Callers treat a failed decode
// like an empty body, so required-field errors are reported instead.
func decodeBody(w http.ResponseWriter, r *http.Request, log *slog.Logger, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		log.Debug("request body rejected", "path", r.URL.Path, "err", err)
	}
	return err
}

// looseString accepts either a JSON string or a JSON number. Numbers are
// rendered in plain decimal form (482913.0 and 4.82913e5 become "482913"),
// and a numeric zero counts as missing.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("expected string or number")
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return errors.New("expected string or number")
	}
	if f == 0 {
		*s = ""
		return nil
	}
	*s = looseString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
