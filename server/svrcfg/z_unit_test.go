// Copyright 2025 Zintix Labs
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

package svrcfg

import (
	"testing"

	"github.com/zintix-labs/dioloto"
	"github.com/zintix-labs/dioloto/configs"
	"github.com/zintix-labs/dioloto/sdk/core"
)

func TestValidDefaults(t *testing.T) {
	lab, err := dioloto.NewAuto(core.Default(), dioloto.Configs(configs.FS))
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	sc := &SvrCfg{Lab: lab, MaxWorkers: 500}
	if err := sc.Valid(); err != nil {
		t.Fatalf("valid: %v", err)
	}
	if sc.Log == nil || sc.Addr != defaultAddr {
		t.Fatalf("defaults not applied: %+v", sc)
	}
	if sc.MaxWorkers != 64 || sc.MaxRounds != defaultMaxRounds || sc.MaxPlayers != defaultMaxPlayers || sc.SimTimeout != defaultSimTimeout {
		t.Fatalf("limits not normalized: %+v", sc)
	}
}

func TestValidRequiresLab(t *testing.T) {
	if err := (&SvrCfg{}).Valid(); err == nil {
		t.Fatalf("missing lab must fail")
	}
}
