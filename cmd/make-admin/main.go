package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"hackathon-backend/config"
	"hackathon-backend/internal/admin"
	"hackathon-backend/log"
	"hackathon-backend/store/mongostore"
)

func main() {
	email := flag.String("email", "", "Email of the user to change")
	revoke := flag.Bool("revoke", false, "Remove the admin flag instead of granting it")
	flag.Parse()
	log.EnsureLogger()
	defer log.Sync()

	if *email == "" {
		fmt.Println("--email is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := config.LoadDatabase()
	client, err := mongostore.Connect(ctx, db.URI)
	if err != nil {
		fmt.Println("failed connecting to database:", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	st, err := mongostore.New(ctx, client.Database(db.Name))
	if err != nil {
		fmt.Println("failed preparing database:", err)
		os.Exit(1)
	}

	u, err := admin.SetAdmin(ctx, st.Users, *email, !*revoke)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("%s (%s) admin: %t\n", u.Email, u.ID.Hex(), u.Admin)
}
