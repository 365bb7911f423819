package main

import (
	"flag"
	"fmt"
	"github.com/pkg/errors"
	"my_http/internal/client"
	"my_http/internal/http_"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const usage = "usage: httpclient [-body text] METHOD address [port]"

func main() {
	body := flag.String("body", "", "body of a PUT or POST request")
	flag.Parse()
	if err := run(flag.Args(), *body); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, body string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New(usage)
	}
	method, err := http_.ParseMethod(args[0])
	if err != nil {
		return err
	}
	address, err := client.ParseAddress(args[1])
	if err != nil {
		return err
	}
	if len(args) == 3 {
		if address.Port, err = strconv.Atoi(args[2]); err != nil {
			return errors.Wrap(err, "port")
		}
	}
	var payload []byte
	if method.HasBody() {
		payload = []byte(body)
	}
	request, err := client.NewRequest(method, address, payload)
	if err != nil {
		return err
	}

	pool := client.NewPool()
	defer pool.Close()
	response, err := pool.Execute(request)
	if err != nil {
		return err
	}
	fmt.Println(response.StatusLine())
	for _, name := range response.Header.Names() {
		fmt.Printf("%s: %s\n", name, response.Header[name])
	}

	outputDir := filepath.Join(getenv("OUTPUT_DIR_NAME", "output"), strconv.FormatInt(time.Now().UnixMilli(), 10))
	saved, err := client.Save(outputDir, request, response)
	if errors.Is(err, client.ErrNoBody) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("body written to", saved)
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
