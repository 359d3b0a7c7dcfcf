package helper

import "testing"

func TestCursorRoundTrip(t *testing.T) {
	cur := Cursor{
		"created_at": "2025-06-01T10:00:00Z",
		"id":         "a3bb189e-8bf9-3888-9912-ace4e6543002",
	}
	raw := EncodeCursor(cur)
	if raw == "" {
		t.Fatal("encode menghasilkan string kosong")
	}

	got := DecodeCursor(raw)
	if got == nil {
		t.Fatal("decode gagal untuk cursor valid")
	}
	for k, want := range cur {
		if got[k] != want {
			t.Errorf("field %s: dapat %v, mau %v", k, got[k], want)
		}
	}

	// encode(decode(x)) == x: urutan key harus deterministik
	if again := EncodeCursor(got); again != raw {
		t.Errorf("round-trip tidak stabil: %q vs %q", again, raw)
	}
}

func TestDecodeCursorGarbage(t *testing.T) {
	cases := []string{
		"",
		"!!!bukan-base64!!!",
		"aGFsbG8",           // base64 valid tapi bukan JSON
		"e30",               // "{}" — object kosong dianggap nil
		"bnVsbA",            // "null"
	}
	for _, raw := range cases {
		if got := DecodeCursor(raw); got != nil {
			t.Errorf("DecodeCursor(%q) = %v, mau nil", raw, got)
		}
	}
}

func TestDecodeCursorPadded(t *testing.T) {
	// varian URL-safe dengan padding '=' juga harus diterima
	got := DecodeCursor("eyJpZCI6ImFiIn0=") // {"id":"ab"}
	if got == nil {
		t.Fatal("decode gagal untuk base64 dengan padding")
	}
	if v, ok := got.String("id"); !ok || v != "ab" {
		t.Errorf("id = %q ok=%v, mau ab", v, ok)
	}
}

func TestCursorKeyset(t *testing.T) {
	full := Cursor{"created_at": "2025-06-01T10:00:00Z", "id": "a3bb189e-8bf9-3888-9912-ace4e6543002"}
	key, id, ok := full.Keyset()
	if !ok || key != "2025-06-01T10:00:00Z" || id != "a3bb189e-8bf9-3888-9912-ace4e6543002" {
		t.Errorf("keyset lengkap: key=%q id=%q ok=%v", key, id, ok)
	}

	// cursor separuh tidak boleh lolos jadi predikat keyset
	partial := []Cursor{
		{"id": "a3bb189e-8bf9-3888-9912-ace4e6543002"}, // tanpa created_at
		{"created_at": "2025-06-01T10:00:00Z"},         // tanpa id
		{"created_at": "2025-06-01T10:00:00Z", "id": ""},
		{"created_at": "", "id": "a3bb189e-8bf9-3888-9912-ace4e6543002"},
		{"created_at": 12345, "id": "a3bb189e-8bf9-3888-9912-ace4e6543002"},
		nil,
	}
	for i, cur := range partial {
		if _, _, ok := cur.Keyset(); ok {
			t.Errorf("kasus %d: cursor tidak lengkap %v tidak boleh ok", i, cur)
		}
	}

	// decode sampah → nil, dan nil tetap aman dipanggil Keyset
	if _, _, ok := DecodeCursor("!!!").Keyset(); ok {
		t.Error("cursor sampah tidak boleh menghasilkan keyset")
	}
}

func TestEncodeCursorEmpty(t *testing.T) {
	if EncodeCursor(nil) != "" {
		t.Error("cursor nil harus encode jadi string kosong")
	}
	if EncodeCursor(Cursor{}) != "" {
		t.Error("cursor kosong harus encode jadi string kosong")
	}
}
