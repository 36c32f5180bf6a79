package admission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	admissionv1 "k8s.io/api/admission/v1"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestGetResourceName(t *testing.T) {
	type args struct {
		request *admissionv1.AdmissionRequest
	}
	tests := []struct {
		name string
		args args
		want string
	}{{
		name: "with namespace",
		args: args{
			request: &admissionv1.AdmissionRequest{
				Kind: v1.GroupVersionKind{
					Kind: "Pod",
				},
				Name:      "dummy",
				Namespace: "ns",
			},
		},
		want: "ns/Pod/dummy",
	}, {
		name: "without namespace",
		args: args{
			request: &admissionv1.AdmissionRequest{
				Kind: v1.GroupVersionKind{
					Kind: "Namespace",
				},
				Name: "dummy",
			},
		},
		want: "Namespace/dummy",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetResourceName(tt.args.request); got != tt.want {
				t.Errorf("GetResourceName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalReview(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantErr        bool
		wantUID        string
		wantAPIVersion string
	}{{
		name:           "valid review",
		raw:            `{"apiVersion":"admission.k8s.io/v1beta1","kind":"AdmissionReview","request":{"uid":"abc"}}`,
		wantUID:        "abc",
		wantAPIVersion: "admission.k8s.io/v1beta1",
	}, {
		name:           "api version fallback",
		raw:            `{"request":{"uid":"abc"}}`,
		wantUID:        "abc",
		wantAPIVersion: DefaultAPIVersion,
	}, {
		name:           "object is not an object",
		raw:            `{"request":{"uid":"abc","object":42}}`,
		wantUID:        "abc",
		wantAPIVersion: DefaultAPIVersion,
	}, {
		name:    "missing uid",
		raw:     `{"apiVersion":"admission.k8s.io/v1","request":{"object":{}}}`,
		wantErr: true,
	}, {
		name:    "uid is not a string",
		raw:     `{"request":{"uid":12}}`,
		wantErr: true,
	}, {
		name:    "missing request",
		raw:     `{"apiVersion":"admission.k8s.io/v1"}`,
		wantErr: true,
	}, {
		name:    "not json",
		raw:     `uid=abc`,
		wantErr: true,
	}, {
		name:    "json array",
		raw:     `[]`,
		wantErr: true,
	}, {
		name:    "null",
		raw:     `null`,
		wantErr: true,
	}, {
		name:    "empty",
		raw:     ``,
		wantErr: true,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := UnmarshalReview([]byte(tt.raw))
			if tt.wantErr {
				assert.Nil(t, review)
				assert.True(t, IsMalformed(err), "%v", err)
				var malformedErr *MalformedRequestError
				assert.True(t, errors.As(err, &malformedErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantUID, string(review.Request.UID))
			assert.Equal(t, tt.wantAPIVersion, review.APIVersion)
		})
	}
}

func TestValidateReviewNil(t *testing.T) {
	assert.True(t, IsMalformed(ValidateReview(nil)))
	assert.True(t, IsMalformed(ValidateReview(&admissionv1.AdmissionReview{})))
}
