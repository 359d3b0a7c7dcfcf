package helper

import (
	"strings"

	"github.com/bytedance/sonic"
)

// Field yang dikontrol server dan tidak boleh datang dari payload edit:
// identitas, foreign key, status final, timestamp penyelesaian, dan
// created_at/updated_at. final_status_* hanya boleh lewat endpoint approval.

func IsServerControlledField(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	switch {
	case k == "id", k == "created_at", k == "updated_at", k == "deleted_at":
		return true
	case strings.HasSuffix(k, "_id"):
		return true
	case strings.HasPrefix(k, "final_status_"):
		return true
	case strings.HasPrefix(k, "tgl_selesai_"):
		return true
	}
	return false
}

// RejectServerControlledFields: mode strict untuk payload dari client —
// setiap key terlarang jadi satu FieldIssue (ditolak, bukan di-strip diam-diam).
func RejectServerControlledFields(payload map[string]interface{}) []FieldIssue {
	var issues []FieldIssue
	for key := range payload {
		if IsServerControlledField(key) {
			issues = append(issues, FieldIssue{
				Path:    []string{key},
				Message: "field dikontrol server, tidak boleh dikirim",
			})
		}
	}
	return issues
}

// CheckStrictBody: decode body JSON lalu tolak key di luar whitelist DTO
// (perilaku schema strict) DAN key yang dikontrol server. Body kosong atau
// bukan JSON object diperlakukan sebagai object kosong, bukan 500.
func CheckStrictBody(body []byte, allowed map[string]struct{}) []FieldIssue {
	if len(body) == 0 {
		return nil
	}
	var payload map[string]interface{}
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil
	}

	issues := RejectServerControlledFields(payload)
	for key := range payload {
		if IsServerControlledField(key) {
			continue
		}
		if _, ok := allowed[key]; !ok {
			issues = append(issues, FieldIssue{
				Path:    []string{key},
				Message: "field tidak dikenal",
			})
		}
	}
	return issues
}

// AllowedKeys bikin set whitelist dari daftar nama field json.
func AllowedKeys(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// StripServerControlledFields: dipakai sebelum echo data kembali ke client,
// mengembalikan salinan tanpa field internal.
func StripServerControlledFields(payload map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(payload))
	for key, val := range payload {
		if IsServerControlledField(key) {
			continue
		}
		out[key] = val
	}
	return out
}
