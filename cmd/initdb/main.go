package main // initdb drops and recreates the schema, then seeds reference data

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// Drop order matters: children before parents.
var dropStmts = []string{
	`DROP TABLE IF EXISTS reservationtables`,
	`DROP TABLE IF EXISTS reservations`,
	`DROP TABLE IF EXISTS menuitems`,
	`DROP TABLE IF EXISTS tables`,
	`DROP TABLE IF EXISTS users`,
}

var createStmts = []string{
	`CREATE TABLE users (
		id INT NOT NULL AUTO_INCREMENT,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		firstName VARCHAR(100) NOT NULL,
		lastName VARCHAR(100) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		role ENUM('client', 'admin') DEFAULT 'client',
		createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE tables (
		id INT NOT NULL AUTO_INCREMENT,
		number VARCHAR(10) NOT NULL,
		seats INT NOT NULL,
		isAvailable TINYINT(1) DEFAULT 1,
		createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY (number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE menuitems (
		id INT NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		category ENUM('entrées', 'plats', 'desserts', 'boissons') NOT NULL,
		imageUrl VARCHAR(255),
		isAvailable TINYINT(1) DEFAULT 1,
		createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE reservations (
		id INT NOT NULL AUTO_INCREMENT,
		userId INT NOT NULL,
		numberOfPeople INT NOT NULL,
		date DATE NOT NULL,
		time TIME NOT NULL,
		status ENUM('pending', 'confirmed', 'cancelled') DEFAULT 'pending',
		note TEXT,
		createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		FOREIGN KEY (userId) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE reservationtables (
		id INT NOT NULL AUTO_INCREMENT,
		reservationId INT NOT NULL,
		tableId INT NOT NULL,
		createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		FOREIGN KEY (reservationId) REFERENCES reservations(id),
		FOREIGN KEY (tableId) REFERENCES tables(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, q := range dropStmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			log.Fatalf("drop: %v", err)
		}
	}
	for _, q := range createStmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			log.Fatalf("create: %v", err)
		}
	}
	log.Println("schema created: users, tables, menuitems, reservations, reservationtables")

	if err := seed(ctx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed data inserted")
	log.Println("test accounts: admin@restaurant.com / motdepasse, client@example.com / motdepasse")
}

func seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	// Both seed accounts share the original demo password.
	hash, err := utils.HashPassword("motdepasse", bcryptCost)
	if err != nil {
		return err
	}
	accounts := []struct {
		email, firstName, lastName, phone, role string
	}{
		{"admin@restaurant.com", "Admin", "Restaurant", "0123456789", model.RoleAdmin},
		{"client@example.com", "Jean", "Dupont", "0687654321", model.RoleClient},
	}
	for _, a := range accounts {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO users (email, password, firstName, lastName, phone, role) VALUES (?,?,?,?,?,?)",
			a.email, hash, a.firstName, a.lastName, a.phone, a.role); err != nil {
			return err
		}
	}

	diningTables := []struct {
		number string
		seats  int
	}{
		{"T1", 2}, {"T2", 2}, {"T3", 4}, {"T4", 4}, {"T5", 6}, {"T6", 8},
	}
	for _, t := range diningTables {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO tables (number, seats) VALUES (?,?)", t.number, t.seats); err != nil {
			return err
		}
	}

	menuItems := []struct {
		name, description, price, category string
	}{
		{"Salade César", "Laitue romaine, croûtons, parmesan, sauce césar maison", "12.50", "entrées"},
		{"Soupe à l'oignon", "Soupe à l'oignon gratinée traditionnelle", "9.90", "entrées"},
		{"Foie gras", "Foie gras maison et sa confiture de figues", "18.50", "entrées"},
		{"Entrecôte", "Entrecôte grillée sauce au poivre", "28.90", "plats"},
		{"Saumon", "Pavé de saumon à l'unilatérale", "24.50", "plats"},
		{"Risotto", "Risotto aux champignons", "19.90", "plats"},
		{"Tarte Tatin", "Tarte aux pommes caramélisées", "8.50", "desserts"},
		{"Mousse au chocolat", "Mousse au chocolat noir", "7.90", "desserts"},
		{"Crème brûlée", "Crème brûlée à la vanille", "8.90", "desserts"},
		{"Vin rouge", "Bordeaux Saint-Émilion", "45.00", "boissons"},
		{"Champagne", "Champagne brut", "65.00", "boissons"},
		{"Cocktail", "Mojito", "12.00", "boissons"},
	}
	for _, m := range menuItems {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO menuitems (name, description, price, category) VALUES (?,?,?,?)",
			m.name, m.description, m.price, m.category); err != nil {
			return err
		}
	}
	return nil
}
