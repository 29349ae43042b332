/*
Package valueprop is a guided, five-step wizard that helps a professional articulate a value proposition.

The wizard walks through context, assets, quantified results, financial impact and a final statement.
Answers live in a session store that is restored from, and mirrored to, a key-value store on every change.
The final sentence is composed from the answers and can be exported as a plain-text summary.

# Architecture

The session store is the only owner of state. Front ends (the terminal wizard, the HTTP API and the MCP server)
drive it through the step sequencer and read snapshots back. Storage backends implement the ports.KVStore
capability (memory, file, Redis) and can be wrapped with the encryption middleware.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/valueprop"
		"github.com/aretw0/valueprop/pkg/adapters/file"
		"github.com/aretw0/valueprop/pkg/compose"
		"github.com/aretw0/valueprop/pkg/domain"
	)

	func main() {
		ctx := context.Background()
		w := valueprop.New(ctx, valueprop.WithKVStore(file.New(".valueprop/storage")))

		p, _ := domain.SetText(domain.FieldAudience, "startup founders")
		w.Store.UpdateData(ctx, p)
		w.Sequencer.Next(ctx)

		fmt.Println(compose.Summary(w.Store.Data()))
	}
*/
package valueprop
