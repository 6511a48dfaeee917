// This script can be used to start a Swift-like server that keeps in memory
// its files, with the avatars of a local directory uploaded in a container.
// It can be started with `go run ./tests/swifttest ./avatars`. The username
// and API key to use are both 'swifttest'.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ncw/swift/v2"
	"github.com/ncw/swift/v2/swifttest"
)

const container = "avatars"

func main() {
	srv, err := swifttest.NewSwiftServer("localhost")
	if err != nil {
		panic(err)
	}
	defer srv.Close()

	ctx := context.Background()
	conn := &swift.Connection{
		UserName: "swifttest",
		ApiKey:   "swifttest",
		AuthUrl:  srv.AuthURL,
	}
	if err := conn.Authenticate(ctx); err != nil {
		panic(err)
	}
	if err := conn.ContainerCreate(ctx, container, nil); err != nil {
		panic(err)
	}

	if len(os.Args) > 1 {
		dir := os.Args[1]
		count := 0
		err = filepath.Walk(dir, func(name string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			rel, err := filepath.Rel(dir, name)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			count++
			return conn.ObjectPutBytes(ctx, container, filepath.ToSlash(rel), data, "")
		})
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d assets uploaded\n", count)
	}

	fmt.Printf("exavatar serve --assets-url=swift://%s --assets-swift-auth-url=%s --assets-swift-username=swifttest --assets-swift-api-key=swifttest\n",
		container, srv.AuthURL)

	// Wait for CTRL-C
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}
