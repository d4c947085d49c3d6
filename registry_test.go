package ovlkit

import (
	"testing"
)

func TestRegistryKnownKinds(t *testing.T) {
	reg := NewRegistry()

	for _, kind := range []string{"brandFollowCard", "itemCard", "rewardBadge", "exploreButton"} {
		if !reg.IsKnownKind(kind) {
			t.Errorf("IsKnownKind(%q) = false, want true", kind)
		}
	}
	for _, kind := range []string{"unknownThing", "", "BrandFollowCard", "itemcard"} {
		if reg.IsKnownKind(kind) {
			t.Errorf("IsKnownKind(%q) = true, want false", kind)
		}
	}
}

func TestRegistryValidate(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name    string
		kind    ComponentKind
		payload ComponentPayload
		wantErr func(error) bool
	}{
		{
			name: "brandFollowCard complete",
			kind: KindBrandFollowCard,
			payload: ComponentPayload{
				"brandName": "Nike", "followers": "+25 mil", "isVerified": true,
			},
		},
		{
			name: "brandFollowCard optional logoUrl",
			kind: KindBrandFollowCard,
			payload: ComponentPayload{
				"brandName": "Nike", "followers": "+25 mil", "logoUrl": "https://cdn/nike.png",
			},
		},
		{
			name:    "brandFollowCard missing followers",
			kind:    KindBrandFollowCard,
			payload: ComponentPayload{"brandName": "Nike"},
			wantErr: IsInvalidPayload,
		},
		{
			name: "brandFollowCard wrong type for isVerified",
			kind: KindBrandFollowCard,
			payload: ComponentPayload{
				"brandName": "Nike", "followers": "+25 mil", "isVerified": "yes",
			},
			wantErr: IsInvalidPayload,
		},
		{
			name: "itemCard full listing",
			kind: KindItemCard,
			payload: ComponentPayload{
				"badge": "1", "imageUrl": "u", "originalPrice": "$150.000",
				"currentPrice": "$99.000", "discount": "34% OFF",
			},
		},
		{
			name:    "itemCard missing currentPrice",
			kind:    KindItemCard,
			payload: ComponentPayload{"imageUrl": "u"},
			wantErr: IsInvalidPayload,
		},
		{
			name:    "rewardBadge",
			kind:    KindRewardBadge,
			payload: ComponentPayload{"points": "120"},
		},
		{
			name:    "rewardBadge empty",
			kind:    KindRewardBadge,
			payload: ComponentPayload{},
			wantErr: IsInvalidPayload,
		},
		{
			name:    "nil payload fails required fields",
			kind:    KindItemCard,
			payload: nil,
			wantErr: IsInvalidPayload,
		},
		{
			name: "unknown extra fields tolerated",
			kind: KindRewardBadge,
			payload: ComponentPayload{
				"points": "120", "futureField": "ignored",
			},
		},
		{
			name:    "unknown kind",
			kind:    "unknownThing",
			payload: ComponentPayload{},
			wantErr: IsUnknownComponent,
		},
		{
			name:    "exploreButton empty payload",
			kind:    KindExploreButton,
			payload: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Validate(tt.kind, tt.payload)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate failed: %v", err)
				}
				return
			}
			if !tt.wantErr(err) {
				t.Errorf("Validate error = %v, want matching sentinel", err)
			}
		})
	}
}

func TestRegistryApplyDefaults(t *testing.T) {
	reg := NewRegistry()

	t.Run("isVerified defaults true", func(t *testing.T) {
		out := reg.ApplyDefaults(KindBrandFollowCard, ComponentPayload{
			"brandName": "Nike", "followers": "+25 mil",
		})
		if out["isVerified"] != true {
			t.Errorf("isVerified = %v, want true", out["isVerified"])
		}
	})

	t.Run("explicit value wins over default", func(t *testing.T) {
		out := reg.ApplyDefaults(KindBrandFollowCard, ComponentPayload{
			"brandName": "Nike", "followers": "+25 mil", "isVerified": false,
		})
		if out["isVerified"] != false {
			t.Errorf("isVerified = %v, want false", out["isVerified"])
		}
	})

	t.Run("input payload not mutated", func(t *testing.T) {
		in := ComponentPayload{"brandName": "Nike", "followers": "+25 mil"}
		reg.ApplyDefaults(KindBrandFollowCard, in)
		if _, present := in["isVerified"]; present {
			t.Error("ApplyDefaults mutated its input")
		}
	})

	t.Run("kind without defaults passes through", func(t *testing.T) {
		in := ComponentPayload{"points": "120"}
		out := reg.ApplyDefaults(KindRewardBadge, in)
		if len(out) != 1 || out["points"] != "120" {
			t.Errorf("payload changed: %v", out)
		}
	})
}

func TestRegistryPinned(t *testing.T) {
	reg := NewRegistry()
	if !reg.Pinned(KindExploreButton) {
		t.Error("exploreButton should be pinned")
	}
	for _, kind := range []ComponentKind{KindBrandFollowCard, KindItemCard, KindRewardBadge} {
		if reg.Pinned(kind) {
			t.Errorf("%s should not be pinned", kind)
		}
	}
	if reg.Pinned("unknownThing") {
		t.Error("unknown kinds report not pinned")
	}
}

func TestRegistryKindsStableOrder(t *testing.T) {
	reg := NewRegistry()
	kinds := reg.Kinds()
	want := []ComponentKind{KindBrandFollowCard, KindExploreButton, KindItemCard, KindRewardBadge}
	if len(kinds) != len(want) {
		t.Fatalf("Kinds() returned %d kinds, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Kinds()[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestSchemaFor(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.SchemaFor(KindItemCard); err != nil {
		t.Errorf("SchemaFor(itemCard) failed: %v", err)
	}
	if _, err := reg.SchemaFor("unknownThing"); !IsUnknownComponent(err) {
		t.Errorf("SchemaFor(unknownThing) error = %v, want ErrUnknownComponent", err)
	}
}
