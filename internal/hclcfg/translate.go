package hclcfg

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/specialistvlad/taskpipe/internal/model"
	"github.com/specialistvlad/taskpipe/internal/schema"
)

// loadFile decodes a single parsed HCL file into the model.
func (l *Loader) loadFile(file *hcl.File, filePath string) (*model.Config, error) {
	var raw schema.File
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, diags
	}

	cfg := model.NewConfig()
	for _, rawPipeline := range raw.Pipelines {
		pipeline, diags := l.translatePipeline(rawPipeline, filePath)
		if diags.HasErrors() {
			return nil, diags
		}
		cfg.Pipelines = append(cfg.Pipelines, pipeline)
	}
	return cfg, nil
}

// translatePipeline converts the HCL-specific pipeline schema into the
// agnostic model.
func (l *Loader) translatePipeline(raw *schema.Pipeline, filePath string) (*model.Pipeline, hcl.Diagnostics) {
	pipeline := &model.Pipeline{
		Name:          raw.Name,
		FSInformation: model.NewFSInfo(filePath),
	}

	if raw.Description != nil {
		expr := raw.Description
		pipeline.Description = &expr
	}
	if raw.Plugins != nil {
		pipeline.Plugins = &model.Plugins{Use: raw.Plugins.Use}
	}

	for _, rawStep := range raw.Steps {
		step, diags := model.NewStepFromHCL(rawStep.Kind, rawStep.Name, rawStep.Body, filePath)
		if diags.HasErrors() {
			return nil, diags
		}
		pipeline.Steps = append(pipeline.Steps, step)
	}

	return pipeline, nil
}
