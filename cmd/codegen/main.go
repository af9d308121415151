package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/lowkeylabs/sourcekit/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const maxArityKey = "arity"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the N-ary combine sources",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  maxArityKey,
				Usage: "Highest combinator arity to generate",
				Value: 4,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for combine sources started!")
	defer func() {
		log.Printf("Codegen for combine sources finished in %v", time.Since(start))
	}()

	maxArity := cmd.Uint(maxArityKey)
	if maxArity < 2 {
		maxArity = 2
	}

	contents := templates.CombineGen(int(maxArity))
	return os.WriteFile("source/combine.go", []byte(contents), 0644)
}
