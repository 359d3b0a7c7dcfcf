package helper

import "testing"

func TestIsServerControlledField(t *testing.T) {
	controlled := []string{
		"id", "created_at", "updated_at", "deleted_at",
		"branch_id", "users_id", "kplt_id",
		"final_status_mou", "final_status_grand_opening",
		"tgl_selesai_notaris",
		" ID ", "Final_Status_Mou",
	}
	for _, k := range controlled {
		if !IsServerControlledField(k) {
			t.Errorf("%q harusnya server-controlled", k)
		}
	}

	free := []string{"nama_lokasi", "alamat", "nilai_mou", "tgl_mou", "catatan_notaris"}
	for _, k := range free {
		if IsServerControlledField(k) {
			t.Errorf("%q harusnya boleh dari client", k)
		}
	}
}

func TestCheckStrictBody(t *testing.T) {
	allowed := AllowedKeys("nama_lokasi", "alamat")

	t.Run("payload bersih lolos", func(t *testing.T) {
		body := []byte(`{"nama_lokasi":"Toko A","alamat":"Jl. Mawar 1"}`)
		if issues := CheckStrictBody(body, allowed); len(issues) != 0 {
			t.Errorf("mau tanpa issue, dapat %v", issues)
		}
	})

	t.Run("key tak dikenal ditolak", func(t *testing.T) {
		body := []byte(`{"nama_lokasi":"Toko A","warna":"merah"}`)
		issues := CheckStrictBody(body, allowed)
		if len(issues) != 1 {
			t.Fatalf("mau 1 issue, dapat %d", len(issues))
		}
		if issues[0].Path[0] != "warna" {
			t.Errorf("path = %v, mau [warna]", issues[0].Path)
		}
	})

	t.Run("field server-controlled ditolak walau tak ada di whitelist", func(t *testing.T) {
		body := []byte(`{"final_status_mou":"Selesai","created_at":"2025-01-01"}`)
		issues := CheckStrictBody(body, allowed)
		if len(issues) != 2 {
			t.Fatalf("mau 2 issue, dapat %d: %v", len(issues), issues)
		}
	})

	t.Run("body kosong bukan error", func(t *testing.T) {
		if issues := CheckStrictBody(nil, allowed); issues != nil {
			t.Errorf("body kosong harus nil issues, dapat %v", issues)
		}
	})

	t.Run("body bukan object bukan error", func(t *testing.T) {
		if issues := CheckStrictBody([]byte(`[1,2,3]`), allowed); issues != nil {
			t.Errorf("body non-object harus nil issues, dapat %v", issues)
		}
	})
}

func TestStripServerControlledFields(t *testing.T) {
	in := map[string]interface{}{
		"nama_lokasi":      "Toko A",
		"id":               "abc",
		"branch_id":        "def",
		"final_status_mou": "Selesai",
	}
	out := StripServerControlledFields(in)
	if len(out) != 1 {
		t.Fatalf("mau 1 field tersisa, dapat %d", len(out))
	}
	if out["nama_lokasi"] != "Toko A" {
		t.Error("field bebas ikut terbuang")
	}
	// input tidak boleh dimutasi
	if len(in) != 4 {
		t.Error("input termutasi")
	}
}
