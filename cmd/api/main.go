package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envがあれば読む（なければ環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Address{},
		&model.Location{},
		&model.StoreCategory{},
		&model.Store{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	storeRepo := infraRepo.NewStoreGormRepository(gormDB)
	locationRepo := infraRepo.NewLocationGormRepository(gormDB)
	categoryRepo := infraRepo.NewStoreCategoryGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, authValidator)
	addressUC := usecase.NewAddressUsecase(userRepo, addressRepo, txm, cfg.MaxAddressCount)
	storeUC := usecase.NewStoreUsecase(userRepo, storeRepo, locationRepo, categoryRepo, txm)

	//Handler生成
	refreshTTL := 30 * 24 * time.Hour
	authH := handler.NewAuthHandler(authUC, refreshTTL)
	addrH := handler.NewAddressHandler(addressUC)
	storeH := handler.NewStoreHandler(storeUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, userRepo, authH, addrH, storeH); err != nil {
		panic(err)
	}
}
