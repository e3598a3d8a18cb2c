package main

import (
	"log"
	"os"

	"pc-estimate-be/internal/model"
	"pc-estimate-be/pkg/database"
	"pc-estimate-be/pkg/parts"
	"pc-estimate-be/pkg/utils"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// seedProduct is the subset of catalog columns the seeder fills in.
// Prices are KRW.
type seedProduct struct {
	Category string
	Name     string
	Price    int
	Capacity string
	Code     string
	Spec     string
}

var products = []seedProduct{
	// CPUs
	{parts.CategoryCPU, "AMD 라이젠5 7500F (라파엘)", 215000, "6코어", "7500F", "AM5 | 6코어 | 12스레드 | 기본 3.7GHz | 쿨러 미포함"},
	{parts.CategoryCPU, "AMD 라이젠7 7800X3D (라파엘)", 478000, "8코어", "7800X3D", "AM5 | 8코어 | 16스레드 | 3D V캐시 | 기본 4.2GHz"},
	{parts.CategoryCPU, "인텔 코어i5-14400F (랩터레이크 리프레시)", 245000, "10코어", "i5-14400F", "LGA1700 | 10코어 | 16스레드 | 기본 2.5GHz | 내장그래픽 미탑재"},
	{parts.CategoryCPU, "인텔 코어i7-14700K (랩터레이크 리프레시)", 548000, "20코어", "i7-14700K", "LGA1700 | 20코어 | 28스레드 | 기본 3.4GHz"},

	// GPUs
	{parts.CategoryGPU, "MSI 지포스 RTX 4060 벤투스 2X OC D6 8GB", 398000, "8GB", "RTX 4060", "RTX 4060 | GDDR6 8GB | 부스트 2490MHz | 듀얼팬"},
	{parts.CategoryGPU, "GIGABYTE 지포스 RTX 4070 SUPER WINDFORCE OC D6X 12GB", 848000, "12GB", "RTX 4070 SUPER", "RTX 4070 SUPER | GDDR6X 12GB | 부스트 2490MHz | 트리플팬"},
	{parts.CategoryGPU, "ASUS DUAL 지포스 RTX 4080 SUPER OC D6X 16GB", 1598000, "16GB", "RTX 4080 SUPER", "RTX 4080 SUPER | GDDR6X 16GB | 부스트 2595MHz"},

	// Motherboards
	{parts.CategoryMBoardIntel, "ASUS PRIME B760M-A D4 대원씨티에스", 135000, "M-ATX", "B760M-A", "LGA1700 | B760 | M-ATX | DDR4 | M.2 2개"},
	{parts.CategoryMBoardIntel, "MSI MAG Z790 토마호크 WIFI", 329000, "ATX", "Z790", "LGA1700 | Z790 | ATX | DDR5 | WIFI 6E"},
	{parts.CategoryMBoardAMD, "ASRock B650M PG 리퀴드 에즈윈", 158000, "M-ATX", "B650M", "AM5 | B650 | M-ATX | DDR5 | M.2 2개"},
	{parts.CategoryMBoardAMD, "MSI MAG X670E 토마호크 WIFI", 359000, "ATX", "X670E", "AM5 | X670E | ATX | DDR5 | WIFI 6E"},

	// Memory
	{parts.CategoryRAM, "삼성전자 DDR4-3200 (16GB)", 42000, "16GB", "DDR4-3200", "DDR4 | 16GB | 3200MHz | 1.2V"},
	{parts.CategoryRAM, "삼성전자 DDR5-5600 (16GB)", 62000, "16GB", "DDR5-5600", "DDR5 | 16GB | 5600MHz | 1.1V"},
	{parts.CategoryRAM, "G.SKILL DDR5-6000 CL30 TRIDENT Z5 RGB (32GB)", 178000, "32GB", "DDR5-6000", "DDR5 | 32GB(16Gx2) | 6000MHz | CL30 | RGB"},

	// Storage
	{parts.CategorySSD, "삼성전자 870 EVO SATA (500GB)", 69000, "500GB", "870 EVO", "SATA3 | 500GB | TLC | 읽기 560MB/s"},
	{parts.CategorySSD, "SK하이닉스 Gold P31 M.2 NVMe (1TB)", 118000, "1TB", "Gold P31", "M.2 NVMe | 1TB | PCIe3.0x4 | 읽기 3500MB/s"},
	{parts.CategorySSD, "삼성전자 990 PRO M.2 NVMe (2TB)", 248000, "2TB", "990 PRO", "M.2 NVMe | 2TB | PCIe4.0x4 | 읽기 7450MB/s"},

	// Coolers
	{parts.CategoryCoolerAir, "DEEPCOOL AK400 ZERO DARK", 32000, "120mm", "AK400", "공랭 | 타워형 | 120mm 팬 | LGA1700/AM5"},
	{parts.CategoryCoolerAir, "Noctua NH-D15 chromax.black", 159000, "140mm", "NH-D15", "공랭 | 듀얼타워 | 140mm 팬 2개 | LGA1700/AM5"},
	{parts.CategoryCoolerLiquid, "커세어 iCUE H100i RGB ELITE 2열 수랭", 165000, "240mm", "H100i", "수랭 | 2열 240mm | RGB | LGA1700/AM5"},
	{parts.CategoryCoolerLiquid, "NZXT KRAKEN 360 3열 수랭", 269000, "360mm", "KRAKEN 360", "수랭 | 3열 360mm | LCD | LGA1700/AM5"},

	// Power
	{parts.CategoryPower, "마이크로닉스 Classic II 풀체인지 600W 80PLUS 230V EU", 59000, "600W", "Classic II 600W", "600W | 80PLUS 브론즈 | ATX | 플랫케이블"},
	{parts.CategoryPower, "시소닉 FOCUS GOLD GX-850 Full Modular", 159000, "850W", "GX-850", "850W | 80PLUS 골드 | 풀모듈러 | ATX3.0"},

	// Cases
	{parts.CategoryCase, "앱코 SUITMASTER 하이브 미들타워", 39000, "미들타워", "HIVE", "미들타워 | ATX | 강화유리 | 쿨링팬 4개"},
	{parts.CategoryCase, "NZXT H6 Flow 미들타워", 139000, "미들타워", "H6 Flow", "미들타워 | ATX | 강화유리 | 듀얼챔버"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding Product Catalog (%d items)\n", len(products))

	created, skipped := 0, 0
	for _, p := range products {
		fp := utils.ProductFingerprint(p.Category, p.Capacity, p.Code, p.Name)

		var existing model.Product
		if err := db.Where("fingerprint = ?", fp).First(&existing).Error; err == nil {
			color.Yellow("skip   %-14s %s", p.Category, p.Name)
			skipped++
			continue
		}

		row := model.Product{
			Category:    p.Category,
			Name:        p.Name,
			Price:       p.Price,
			Capacity:    p.Capacity,
			Code:        p.Code,
			Spec:        p.Spec,
			Fingerprint: fp,
		}
		if err := db.Create(&row).Error; err != nil {
			color.Red("fail   %-14s %s: %v", p.Category, p.Name, err)
			continue
		}
		color.Green("create %-14s %s", p.Category, p.Name)
		created++
	}

	color.Cyan("\n✅ Done: %d created, %d skipped", created, skipped)
	color.White("Note: run these products through POST /api/product/v1/ingest to build their embeddings.")
}
