// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/refit/pkg/config"
	"github.com/walteh/refit/pkg/log"
	"github.com/walteh/refit/pkg/rewrite"
	"github.com/walteh/refit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewApplyOperation creates the operation that rewrites entity files in
// place
func NewApplyOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &applyOperation{BaseOperation: base}, nil
}

// 📦 NewPlanOperation creates the dry-run variant: the full pipeline runs
// in memory but nothing is written back
func NewPlanOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &applyOperation{BaseOperation: base, dryRun: true}, nil
}

// 🎮 applyOperation implements both apply and plan
type applyOperation struct {
	BaseOperation
	dryRun bool
}

func (op *applyOperation) Name() string {
	if op.dryRun {
		return "plan"
	}
	return "apply"
}

// 🏃 Execute processes every configured entity in order. Each file is read,
// fully transformed in memory, and written back before the next file starts.
// A read or write failure aborts the whole run; there is no per-file
// isolation and no retry.
func (op *applyOperation) Execute(ctx context.Context) error {
	entities, err := op.Config.Expand(ctx)
	if err != nil {
		return errors.Errorf("expanding entities: %w", err)
	}

	op.Logger.StartRun(ctx, log.RunOperation{
		ConfigPath: op.ConfigPath,
		Entities:   len(entities),
		DryRun:     op.dryRun,
	})
	defer op.Logger.EndRun(ctx)

	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("run cancelled: %w", err)
		}
		if err := op.processEntity(ctx, entity); err != nil {
			return errors.Errorf("processing %s: %w", entity.File, err)
		}
	}

	return nil
}

// 📄 processEntity runs the rewrite pipeline for one entity: load text,
// apply the pattern rules, replace the builder block, persist. The buffer
// is owned exclusively by this call and discarded once written back.
func (op *applyOperation) processEntity(ctx context.Context, entity config.Entity) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("file", entity.File).Str("entity", entity.Name).Msg("processing entity")

	params := rewrite.Params{
		Name:        entity.Name,
		Description: entity.Description,
		Priority:    entity.Priority,
	}

	original, err := op.StatusMgr.ReadFile(ctx, entity.File)
	if err != nil {
		op.trackFailure(ctx, entity, err)
		return errors.Errorf("reading entity file: %w", err)
	}

	text, result := op.Rules.Apply(ctx, string(original), params)
	text, blockFound := rewrite.ReplaceBlock(ctx, text, op.Block, params)

	changed := result.Changed || text != string(original)

	info := status.FileInfo{
		Path:         entity.File,
		Entity:       entity.Name,
		RulesApplied: result.Applied,
		BlockFound:   blockFound,
	}

	switch {
	case !changed:
		info.Status = status.StatusUnchanged
	case op.dryRun:
		info.Status = status.StatusPlanned
	default:
		if err := op.StatusMgr.WriteFileAtomic(ctx, entity.File, []byte(text)); err != nil {
			op.trackFailure(ctx, entity, err)
			return errors.Errorf("writing entity file: %w", err)
		}
		info.Status = status.StatusRewritten
		info.Checksum = status.Checksum([]byte(text))
	}

	op.StatusMgr.TrackFile(ctx, entity.File, info)
	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:         entity.File,
		Entity:       entity.Name,
		Status:       info.Status.String(),
		RulesApplied: len(result.Applied),
		BlockFound:   blockFound,
		DryRun:       op.dryRun,
	})

	return nil
}

// ❌ trackFailure records a fatal per-file error before it aborts the run
func (op *applyOperation) trackFailure(ctx context.Context, entity config.Entity, err error) {
	op.StatusMgr.TrackFile(ctx, entity.File, status.FileInfo{
		Path:   entity.File,
		Entity: entity.Name,
		Status: status.StatusFailed,
		Error:  err,
	})
	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:   entity.File,
		Entity: entity.Name,
		Status: status.StatusFailed.String(),
		DryRun: op.dryRun,
	})
}
