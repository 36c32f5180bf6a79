package engine

import (
	"encoding/json"

	admissionv1 "k8s.io/api/admission/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	kjson "sigs.k8s.io/json"
)

// objectView is the only part of the admitted object the engine reads.
// Any level may be absent, absence is never an error. Keys match exactly.
type objectView struct {
	Metadata *metadataView `json:"metadata,omitempty"`
}

type metadataView struct {
	OwnerReferences []json.RawMessage `json:"ownerReferences,omitempty"`
}

func (o *objectView) hasOwner() bool {
	return o != nil && o.Metadata != nil && len(o.Metadata.OwnerReferences) > 0
}

// HasOwner reports whether the admitted object carries at least one owner
// reference. Missing, empty or mistyped fields all count as no owner.
func HasOwner(request *admissionv1.AdmissionRequest) bool {
	if request == nil {
		return false
	}
	if len(request.Object.Raw) == 0 {
		if request.Object.Object == nil {
			return false
		}
		accessor, err := meta.Accessor(request.Object.Object)
		if err != nil {
			return false
		}
		return len(accessor.GetOwnerReferences()) > 0
	}
	var view *objectView
	if err := kjson.UnmarshalCaseSensitivePreserveInts(request.Object.Raw, &view); err != nil {
		return false
	}
	return view.hasOwner()
}
