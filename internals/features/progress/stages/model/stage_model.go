// internals/features/progress/stages/model/stage_model.go
package model

// Enam tahap progress berbagi satu bentuk state machine:
// Belum → (isi field bisnis) → Selesai | Batal. Yang membedakan hanya
// nama field status dan field bisnis yang boleh diedit, jadi tahap
// didefinisikan sebagai data, bukan enam paket terpisah.

const (
	StageStatusBelum   = "Belum"
	StageStatusSelesai = "Selesai"
	StageStatusBatal   = "Batal"
)

type StageDef struct {
	Key         string // segmen URL sekaligus prefix nama fn_ di database
	Nama        string // label untuk pesan ke user
	StatusField string // final_status_<key>, satu-satunya field di payload approval
	// field bisnis yang boleh dikirim client lewat upsert; final_status_*
	// dan tgl_selesai_* tidak pernah masuk sini
	EditableKeys map[string]struct{}
}

var Stages = []StageDef{
	{
		Key: "mou", Nama: "MOU", StatusField: "final_status_mou",
		EditableKeys: keys("tgl_mou", "nomor_mou", "pihak_kedua", "nilai_mou", "catatan_mou"),
	},
	{
		Key: "izin_tetangga", Nama: "Izin Tetangga", StatusField: "final_status_izin_tetangga",
		EditableKeys: keys("jumlah_tetangga", "biaya_kompensasi", "tgl_sosialisasi", "catatan_izin_tetangga"),
	},
	{
		Key: "perizinan", Nama: "Perizinan", StatusField: "final_status_perizinan",
		EditableKeys: keys("jenis_izin", "nomor_izin", "tgl_pengajuan", "biaya_perizinan", "catatan_perizinan"),
	},
	{
		Key: "notaris", Nama: "Notaris", StatusField: "final_status_notaris",
		EditableKeys: keys("nama_notaris", "nomor_akta", "tgl_akta", "biaya_notaris", "catatan_notaris"),
	},
	{
		Key: "renovasi", Nama: "Renovasi", StatusField: "final_status_renovasi",
		EditableKeys: keys("nama_kontraktor", "nilai_rab", "tgl_mulai", "tgl_target_selesai", "catatan_renovasi"),
	},
	{
		Key: "grand_opening", Nama: "Grand Opening", StatusField: "final_status_grand_opening",
		EditableKeys: keys("tgl_rencana", "anggaran_promosi", "catatan_grand_opening"),
	},
}

// StageByKey lookup dari segmen URL; false untuk tahap yang tidak dikenal.
func StageByKey(key string) (StageDef, bool) {
	for _, s := range Stages {
		if s.Key == key {
			return s, true
		}
	}
	return StageDef{}, false
}

func keys(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
