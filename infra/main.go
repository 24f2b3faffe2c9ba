package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/chain-assistant/infra/cloudrun"
	"github.com/GregMSThompson/chain-assistant/infra/docker"
	"github.com/GregMSThompson/chain-assistant/infra/provider"
	"github.com/GregMSThompson/chain-assistant/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// the vertex provider needs the AI Platform API; the gemini provider only needs a key
		aiCfg := config.New(ctx, "ai")
		if aiCfg.Get("provider") == "vertex" {
			if err = vertex.SetupVertex(ctx, prov); err != nil {
				return err
			}
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
