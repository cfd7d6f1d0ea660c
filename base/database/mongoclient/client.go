package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/escrow/base/log"
)

const (
	socketTimeout  = 60 * time.Second
	connectTimeout = 10 * time.Second
)

// Client is a mongo.Client bound to the database every store writes to
type Client struct {
	DbName string
	*mongo.Client
}

// DB returns the bound database
func (c *Client) DB() *mongo.Database {
	return c.Client.Database(c.DbName)
}

// MustConnectMongoClient panics when ConnectMongoClient fails
func MustConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) *Client {
	cli, err := ConnectMongoClient(uri, authDBName, dbName, ssl, setSafe, poolSizeMultiplier)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": dbName, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// poolSize spreads NumCPU*multiplier connections across the hosts of the uri
func poolSize(hosts int, multiplier float64) uint64 {
	total := int(float64(runtime.NumCPU()) * multiplier)
	if hosts < 1 {
		hosts = 1
	}
	size := (total + hosts - 1) / hosts
	if size < 1 {
		size = 1
	}
	return uint64(size)
}

func clientOptions(uri string, conn connstring.ConnString, authDBName string, ssl, setSafe bool, poolSizeMultiplier float64) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetSocketTimeout(socketTimeout).
		SetConnectTimeout(connectTimeout).
		SetRegistry(Registry).
		SetRetryWrites(true)

	if conn.Username != "" && conn.AuthSource == "" {
		opts.SetAuth(options.Credential{
			AuthMechanism:           conn.AuthMechanism,
			AuthMechanismProperties: conn.AuthMechanismProperties,
			Username:                conn.Username,
			Password:                conn.Password,
			PasswordSet:             conn.PasswordSet,
			AuthSource:              authDBName,
		})
	}

	size := poolSize(len(conn.Hosts), poolSizeMultiplier)
	opts.SetMinPoolSize(size / 4)
	opts.SetMaxPoolSize(size)

	if ssl {
		opts.SetTLSConfig(&tls.Config{})
	}
	if setSafe {
		opts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}
	return opts
}

// ConnectMongoClient connects and lists the collections of dbName once, so a
// wrong database or credential fails at startup instead of on the first write
func ConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) (*Client, error) {
	conn, err := connstring.Parse(uri)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": dbName, "err": err}).Error("connstring.Parse failed")
		return nil, err
	}
	logger := log.Log().WithFields(log.Fields{"mongoHosts": conn.Hosts, "dbName": dbName})

	opts := clientOptions(uri, conn, authDBName, ssl, setSafe, poolSizeMultiplier)
	logger.WithField("maxPoolSize", *opts.MaxPoolSize).Info("mongo driver pool size")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.WithField("err", err).Error("mongo.Connect failed")
		return nil, err
	}
	if _, err := client.Database(dbName).ListCollectionNames(ctx, bson.D{}); err != nil {
		logger.WithField("err", err).Error("ListCollectionNames failed")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongo connected")
	return &Client{
		Client: client,
		DbName: dbName,
	}, nil
}
