package dialog

import "fmt"

// User-facing reply text. The bot speaks Indonesian; API errors are
// interpolated as-is so the user sees something actionable.
const (
	replyHelp = `📚 Bantuan Jadwal Bot

Perintah yang tersedia:
/add_event - Buat jadwal baru langkah demi langkah
/list_events - Lihat jadwal hari ini
/list_week - Lihat jadwal minggu ini
/delete_event - Hapus jadwal
/ai <pesan> - Tanya AI assistant
/reset - Hapus riwayat percakapan AI
/connect_calendar - Cek koneksi Google Calendar
/cancel - Batalkan operasi yang sedang berjalan

Kamu juga bisa langsung mengetik pesan biasa, misalnya:
"Besok meeting sama tim jam 10 pagi di kantor"
dan AI akan membuatkan jadwalnya untukmu. 🤖`

	replyAIMode = `🤖 Mode AI Assistant

Langsung ketik pesanmu, misalnya:
"Jumat depan makan siang sama client jam 12"

AI akan mendeteksi jadwal dan membuatkannya di kalendermu.`

	replyAIUsage = "Gunakan: /ai <pesan>\n\nContoh: /ai besok meeting jam 10 pagi"

	replyCancelled = "❌ Operasi dibatalkan."

	replyHistoryCleared = "🧹 Riwayat percakapan AI sudah dihapus."

	replyUnknownCommand = "Perintah tidak dikenali. Ketik /help untuk melihat daftar perintah."

	replyCalendarConnected = "✅ Google Calendar sudah terhubung dan siap dipakai!"

	replyCalendarUnavailable = `❌ Google Calendar belum terhubung.

Pastikan file credentials.json tersedia dan jalankan ulang bot untuk proses otorisasi.`

	replyModelUnavailable = "🤖 AI Assistant belum dikonfigurasi. Set GEMINI_API_KEY untuk mengaktifkannya."

	replyModelFailed = "❌ Error memproses pesan: %v"

	replyAskTitle = "📝 Apa judul jadwalnya?"

	replyAskDate = `✅ Judul: %s

📅 Kapan jadwalnya?
Contoh: besok, jumat, 17/08/2025`

	replyBadDate = `❌ Format tanggal tidak dikenali.

Coba: hari ini, besok, senin, atau 17/08/2025`

	replyAskTime = `✅ Tanggal: %s

🕐 Jam berapa mulainya?
Contoh: 09:00, jam 2 siang, 14.30`

	replyBadTime = `❌ Format waktu tidak dikenali.

Coba: 09:00, jam 2 siang, atau 14.30`

	replyAskDuration = `✅ Mulai: %02d:%02d

⏳ Berapa lama?
Contoh: 1 jam, 30 menit, 1 jam 30 menit`

	replyAskLocation = `✅ Durasi: %s

📍 Di mana lokasinya?
Ketik skip jika tanpa lokasi.`

	replyCreated = `✅ Jadwal berhasil dibuat!

📝 %s
📅 %s
🕐 %s - %s`

	replyCreateFailed = "❌ Gagal membuat jadwal: %v"

	replyListFailed = "❌ Gagal mengambil jadwal: %v"

	replyNoEventsToday = "📋 Tidak ada jadwal hari ini. Waktunya santai! 🎉"

	replyNoEventsWeek = "🗓️ Tidak ada jadwal minggu ini."

	replyNothingToDelete = "🗑️ Tidak ada jadwal yang bisa dihapus."

	replyDeleteHeader = "🗑️ Pilih jadwal yang mau dihapus:\n"

	replyDeleteFooter = "\n\nBalas dengan nomornya, atau ketik batal untuk membatalkan."

	replyDeleteCancelled = "❌ Penghapusan dibatalkan."

	replyBadSelection = "Masukkan nomor yang valid, atau ketik batal."

	replySelectionOutOfRange = "Nomor tidak valid. Pilih antara 1 sampai %d."

	replyDeleteFailed = "❌ Gagal menghapus jadwal: %v"

	replyDeleted = "✅ Jadwal %s berhasil dihapus!"

	replyExtractFailed = `⚠️ AI mendeteksi jadwal, tapi gagal membuatnya: %v

Respons AI:
%s`
)

func welcomeMessage(hour int) string {
	return fmt.Sprintf(`%s! 👋

Aku Jadwal Bot, asisten kalender pribadimu.

Aku bisa:
📅 Membuat jadwal langkah demi langkah (/add_event)
📋 Menampilkan jadwal hari ini (/list_events)
🗓️ Menampilkan jadwal minggu ini (/list_week)
🗑️ Menghapus jadwal (/delete_event)
🤖 Memahami pesan biasa, coba ketik:
"Besok meeting sama tim jam 10 pagi"

Ketik /help untuk bantuan lengkap.`, greeting(hour))
}
