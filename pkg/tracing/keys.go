package tracing

import "go.opentelemetry.io/otel/attribute"

const (
	// admission request attributes
	RequestNameKey             = attribute.Key("admission.request.name")
	RequestNamespaceKey        = attribute.Key("admission.request.namespace")
	RequestUidKey              = attribute.Key("admission.request.uid")
	RequestOperationKey        = attribute.Key("admission.request.operation")
	RequestDryRunKey           = attribute.Key("admission.request.dryrun")
	RequestKindGroupKey        = attribute.Key("admission.request.kind.group")
	RequestKindVersionKey      = attribute.Key("admission.request.kind.version")
	RequestKindKindKey         = attribute.Key("admission.request.kind.kind")
	RequestSubResourceKey      = attribute.Key("admission.request.subresource")
	RequestUserNameKey         = attribute.Key("admission.request.user.name")
	RequestUserUidKey          = attribute.Key("admission.request.user.uid")
	RequestUserGroupsKey       = attribute.Key("admission.request.user.groups")
	RequestReviewAPIVersionKey = attribute.Key("admission.request.review.apiversion")
	// admission response attributes
	ResponseUidKey           = attribute.Key("admission.response.uid")
	ResponseAllowedKey       = attribute.Key("admission.response.allowed")
	ResponseResultStatusKey  = attribute.Key("admission.response.result.status")
	ResponseResultMessageKey = attribute.Key("admission.response.result.message")
	ResponseResultCodeKey    = attribute.Key("admission.response.result.code")
	// http attributes
	HttpMethodKey        = attribute.Key("http.request.method")
	HttpPathKey          = attribute.Key("url.path")
	HttpContentLengthKey = attribute.Key("http.request.body.size")
	HttpStatusCodeKey    = attribute.Key("http.response.status_code")
	// decision attributes
	DecisionOwnedKey   = attribute.Key("itsfriday.decision.owned")
	DecisionReasonKey  = attribute.Key("itsfriday.decision.reason")
	DecisionAllowedKey = attribute.Key("itsfriday.decision.allowed")
)

// StringValue avoids empty attribute values, some backends drop them.
func StringValue(value string) string {
	if value == "" {
		return "<empty>"
	}
	return value
}
