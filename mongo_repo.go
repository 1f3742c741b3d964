package accounts

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUserRepository struct {
	collection *mongo.Collection
}

type dbUser struct {
	ID           ID        `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Age          int       `bson:"age"`
	Sessions     []string  `bson:"sessions"`
	Avatar       []byte    `bson:"avatar,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func NewMongoUserRepository(c *mongo.Collection) Repository {
	return &mongoUserRepository{collection: c}
}

func (m *mongoUserRepository) FindByID(id ID) (*User, error) {
	return m.findUserBy("_id", string(id))
}

func (m *mongoUserRepository) FindByEmail(email string) (*User, error) {
	return m.findUserBy("email", email)
}

func (m *mongoUserRepository) findUserBy(key string, val string) (*User, error) {
	var u dbUser
	sr := m.collection.FindOne(context.TODO(), bson.M{key: val})

	if sr.Err() == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&u); err != nil {
		return nil, err
	}

	nU := userFromDBUser(u)
	return &nU, nil
}

func (m *mongoUserRepository) Store(u *User) error {
	dbu := dbUserFromUser(u)
	_, err := m.collection.InsertOne(context.TODO(), &dbu)
	return err
}

func (m *mongoUserRepository) Update(u *User) error {
	dbu := dbUserFromUser(u)
	_, err := m.collection.ReplaceOne(context.TODO(), bson.M{"_id": dbu.ID}, dbu)
	return err
}

func (m *mongoUserRepository) Delete(id ID) error {
	res, err := m.collection.DeleteOne(context.TODO(), bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func dbUserFromUser(u *User) dbUser {
	return dbUser{u.ID, u.Name, u.Email, u.PasswordHash, u.Age, u.Sessions, u.Avatar, u.CreatedAt}
}

func userFromDBUser(u dbUser) User {
	nU := User{u.ID, u.Name, u.Email, u.PasswordHash, u.Age, u.Sessions, u.Avatar, u.CreatedAt}
	return nU
}
