package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"wasteland-companion/internal"
	"wasteland-companion/internal/users"
)

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login returns a marshalled token + user payload on success
func (r *Login) Login(db *mongo.Database) (string, error) {
	if r.Email == "" {
		ee := internal.ErrorFormat{Package: "internal.auth", Level: log.ErrorLevel, Function: "auth.Login", Message: "invalid email address"}
		ee.Print()
		return "", fmt.Errorf(ee.Message)
	}

	u := users.User{Email: r.Email}
	user, err := u.FromEmail(db)
	if err != nil {
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(r.Password))
	if err != nil {
		ee := internal.ErrorFormat{Package: "internal.auth", Level: log.ErrorLevel, Function: "auth.Login", ObjectID: user.ID, Message: "invalid password"}
		ee.Print()
		return "", fmt.Errorf(ee.Message)
	}

	session := Session{
		ID: user.ID,
	}

	err = session.Create(db)
	if err != nil {
		ee := internal.ErrorFormat{Package: "internal.auth", Level: log.ErrorLevel, Function: "auth.Login", ObjectID: user.ID, Message: "unable to create session", Error: err}
		ee.Print()
		return "", fmt.Errorf(ee.Message)
	}

	claims := jwt.MapClaims{
		"item_id":    session.ID.Hex(),
		"session_id": session.SessionID.Hex(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString([]byte(os.Getenv("KEY")))
	if err != nil {
		ee := internal.ErrorFormat{Package: "internal.auth", Level: log.ErrorLevel, Function: "auth.Login", Message: "unable to generate session token", Error: err}
		ee.Print()
		return "", err
	}

	out := map[string]any{
		"token": t,
		"data":  *user,
	}

	bytes, err := json.Marshal(out)
	if err != nil {
		ee := internal.ErrorFormat{Package: "internal.auth", Level: log.ErrorLevel, Function: "auth.Login", Message: "unable to marshal token"}
		ee.Print()
		return "", fmt.Errorf(ee.Message)
	}

	return string(bytes), nil
}

type Register struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Register returns error on fail, nil on success
func (r *Register) Register(db *mongo.Database) (string, error) {
	if r.FirstName == "" {
		return "", errors.New("invalid first name")
	}
	if r.LastName == "" {
		return "", errors.New("invalid last name")
	}
	if r.Email == "" {
		return "", errors.New("invalid email address")
	}
	if r.Password == "" {
		return "", errors.New("invalid password, please ensure passwords match")
	}

	role := r.Role
	if role != "admin" {
		role = "viewer"
	}

	pwd, err := bcrypt.GenerateFromPassword([]byte(r.Password), 10)
	if err != nil {
		return "", err
	}

	user := users.User{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  string(pwd),
		Role:      role,
		Admin:     role == "admin",
	}

	err = user.Create(db)
	if err != nil {
		return "", err
	}

	login := Login{Email: r.Email, Password: r.Password}
	return login.Login(db)
}
