package main

import (
	"flag"
	"log"

	"github.com/habab6/ipec-campus-connect-sub000/app/config"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "IPEC", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: addadmin -email admin@ipec.be -password secret")
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if err := database.CreateUserWithRole(db, user, "admin"); err != nil {
		log.Fatal("Failed to create admin: ", err)
	}

	log.Printf("Admin account %s created (id %s)", user.Email, user.ID)
}
