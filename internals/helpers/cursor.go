package helper

import (
	"encoding/base64"

	"github.com/bytedance/sonic"
)

// Cursor keyset: {<sort_field>: value, id: uuid} di-encode base64url JSON.
// Decode toleran — input rusak menghasilkan nil, bukan error/panic,
// supaya ?after= sampah cukup berarti "mulai dari awal".

type Cursor map[string]interface{}

func EncodeCursor(cur Cursor) string {
	if len(cur) == 0 {
		return ""
	}
	// ConfigStd: urutan key deterministik, encode(decode(x)) == x
	b, err := sonic.ConfigStd.Marshal(cur)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeCursor(raw string) Cursor {
	if raw == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		// terima juga varian dengan padding
		b, err = base64.URLEncoding.DecodeString(raw)
		if err != nil {
			return nil
		}
	}
	var cur Cursor
	if err := sonic.Unmarshal(b, &cur); err != nil {
		return nil
	}
	if len(cur) == 0 {
		return nil
	}
	return cur
}

// CursorString ambil field string dari cursor (mis. "id").
func (c Cursor) String(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c[key].(string)
	return v, ok
}

// Keyset mengembalikan pasangan (created_at, id) hanya jika keduanya ada
// dan tidak kosong. Cursor yang cuma separuh tidak boleh dipakai sebagai
// predikat keyset — string kosong akan gagal di-cast ::uuid oleh Postgres.
func (c Cursor) Keyset() (createdAt, id string, ok bool) {
	createdAt, okCreated := c.String("created_at")
	id, okID := c.String("id")
	if !okCreated || !okID || createdAt == "" || id == "" {
		return "", "", false
	}
	return createdAt, id, true
}
