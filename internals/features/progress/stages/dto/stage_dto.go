// internals/features/progress/stages/dto/stage_dto.go
package dto

import (
	"strings"

	"github.com/bytedance/sonic"

	"lokasiku_backend/internals/features/progress/stages/model"
	helper "lokasiku_backend/internals/helpers"
)

// ParseApproval: payload approval harus berisi tepat satu field,
// final_status_<stage>, dengan nilai "selesai"/"batal" (case-insensitive).
// Nilai dinormalisasi ke "Selesai"/"Batal" sebelum dikirim ke prosedur.
// Ini sengaja TIDAK lewat CheckStrictBody karena final_status_* justru
// satu-satunya field server-controlled yang boleh lewat jalur ini.
func ParseApproval(body []byte, def model.StageDef) (string, []helper.FieldIssue) {
	var payload map[string]interface{}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &payload); err != nil {
			payload = nil
		}
	}

	var issues []helper.FieldIssue
	for key := range payload {
		if key != def.StatusField {
			issues = append(issues, helper.FieldIssue{
				Path:    []string{key},
				Message: "field tidak dikenal",
			})
		}
	}

	raw, ok := payload[def.StatusField]
	if !ok {
		issues = append(issues, helper.FieldIssue{
			Path:    []string{def.StatusField},
			Message: "wajib diisi",
		})
		return "", issues
	}

	str, ok := raw.(string)
	if !ok {
		return "", append(issues, helper.FieldIssue{
			Path:    []string{def.StatusField},
			Message: "harus selesai atau batal",
		})
	}

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "selesai":
		return model.StageStatusSelesai, issues
	case "batal":
		return model.StageStatusBatal, issues
	}
	return "", append(issues, helper.FieldIssue{
		Path:    []string{def.StatusField},
		Message: "harus selesai atau batal",
	})
}

// ParseUpsert: payload field bisnis tahap — strict terhadap whitelist tahap
// dan menolak semua field server-controlled.
func ParseUpsert(body []byte, def model.StageDef) (map[string]interface{}, []helper.FieldIssue) {
	if issues := helper.CheckStrictBody(body, def.EditableKeys); len(issues) > 0 {
		return nil, issues
	}
	var payload map[string]interface{}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &payload); err != nil {
			payload = nil
		}
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}
