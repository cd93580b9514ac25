package main

import (
	"flag"
	"os"

	"uracard.link/configs"
	"uracard.link/configs/configsdatabase"
	"uracard.link/configs/configslog"
	"uracard.link/database"
)

func main() {
	configslog.InitLogger(os.Getenv("APP_ENV"))
	defer configslog.Sync()

	migrateFlag := flag.Bool("migrate", false, "Veritabanı migrasyonlarını çalıştır")
	seedFlag := flag.Bool("seed", false, "Veritabanı seeder'larını çalıştır")
	flag.Parse()

	configs.LoadConfig()

	db, err := configsdatabase.Connect()
	if err != nil {
		configslog.SLog.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}
	defer configsdatabase.Close()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	database.Initialize(db, *migrateFlag, *seedFlag)

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
