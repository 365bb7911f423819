package main

import (
	"github.com/ztrue/shutdown"
	"log"
	"my_http/internal/errors_"
	"my_http/internal/server"
	"syscall"
)

func main() {
	s := server.New(server.ConfigFromEnv())
	shutdown.Add(func() {
		if err := s.Close(); err != nil {
			errors_.Log(main, err)
		}
	})
	go func() {
		if err := s.ListenAndServe(); err != nil {
			log.Fatal(err)
		}
	}()
	shutdown.Listen(syscall.SIGINT, syscall.SIGTERM)
}
