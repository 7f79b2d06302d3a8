package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// ConnectDB opens the tenant database with the configured driver.
func ConnectDB() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			DBUser, DBPassword, DBHost, DBPort, DBName)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			DBHost, DBUser, DBPassword, DBName, DBPort)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		dsn := "sqlserver://" + DBUser + ":" + DBPassword + "@" + DBHost + ":" + DBPort + "?database=" + DBName
		db, err = gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return nil, err
	}

	fmt.Println("🚀 Connected to database " + DBName)
	return db, nil
}
