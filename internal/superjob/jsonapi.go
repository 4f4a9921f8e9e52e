// JSON:API document shapes for the site's backend. Outbound documents are
// built fully typed; inbound ones keep attributes and relationship targets
// raw because every endpoint returns a different mix of resource types.

package superjob

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

type outRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type outRel struct {
	Data outRef `json:"data"`
}

type outResource struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    map[string]any    `json:"attributes,omitempty"`
	Relationships map[string]outRel `json:"relationships,omitempty"`
}

type outDocument struct {
	Data     outResource   `json:"data"`
	Included []outResource `json:"included,omitempty"`
}

// newApplicationDocument builds the composite payload an application POST
// expects: cvApplication → vacancyResponse → {resume, vacancy, type}, with
// the application type pinned to the "default" dictionary entry.
func newApplicationDocument(vacancyID, resumeID string, noWorkExperience bool) outDocument {
	applicationID := uuid.NewString()
	responseID := uuid.NewString()
	typeID := uuid.NewString()

	return outDocument{
		Data: outResource{
			ID:   applicationID,
			Type: "cvApplication",
			Relationships: map[string]outRel{
				"vacancyResponse": {Data: outRef{ID: responseID, Type: "vacancyResponse"}},
			},
		},
		Included: []outResource{
			{
				ID:         responseID,
				Type:       "vacancyResponse",
				Attributes: map[string]any{"noWorkExperience": noWorkExperience},
				Relationships: map[string]outRel{
					"resume":            {Data: outRef{ID: resumeID, Type: "resume"}},
					"vacancy":           {Data: outRef{ID: vacancyID, Type: "vacancy"}},
					"cvApplicationType": {Data: outRef{ID: typeID, Type: "cvApplicationType"}},
				},
			},
			{
				ID:   typeID,
				Type: "cvApplicationType",
				Relationships: map[string]outRel{
					"cvApplicationTypeDictionary": {Data: outRef{ID: "default", Type: "cvApplicationTypeDictionary"}},
				},
			},
		},
	}
}

// newChatMessageDocument builds a plain text chat message payload.
func newChatMessageDocument(chatID, message, sentAt string) outDocument {
	messageID := uuid.NewString()
	simpleID := uuid.NewString()

	return outDocument{
		Data: outResource{
			ID:         messageID,
			Type:       "chatMessage",
			Attributes: map[string]any{"createdOnClientAt": sentAt},
			Relationships: map[string]outRel{
				"chat":          {Data: outRef{ID: chatID, Type: "chat"}},
				"simpleMessage": {Data: outRef{ID: simpleID, Type: "simpleChatMessage"}},
			},
		},
		Included: []outResource{
			{ID: simpleID, Type: "simpleChatMessage", Attributes: map[string]any{"message": message}},
		},
	}
}

type inRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type inRel struct {
	Data json.RawMessage `json:"data"` // object for to-one, array for to-many
}

type inResource struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	Attributes    json.RawMessage  `json:"attributes"`
	Relationships map[string]inRel `json:"relationships"`
}

// relatedRef resolves a to-one relationship reference.
func (r inResource) relatedRef(name string) (inRef, bool) {
	rel, ok := r.Relationships[name]
	if !ok || len(rel.Data) == 0 {
		return inRef{}, false
	}
	var ref inRef
	if err := json.Unmarshal(rel.Data, &ref); err != nil || ref.ID == "" {
		return inRef{}, false
	}
	return ref, true
}

func (r inResource) relatedID(name string) string {
	ref, ok := r.relatedRef(name)
	if !ok {
		return ""
	}
	return ref.ID
}

type inDocument struct {
	Data     json.RawMessage `json:"data"`
	Included []inResource    `json:"included"`
	Meta     struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// dataOne decodes a single primary resource, reporting false for lists.
func (d inDocument) dataOne() (inResource, bool) {
	raw := bytes.TrimSpace(d.Data)
	if len(raw) == 0 || raw[0] != '{' {
		return inResource{}, false
	}
	var res inResource
	if err := json.Unmarshal(raw, &res); err != nil {
		return inResource{}, false
	}
	return res, true
}

// dataMany decodes a primary resource list, reporting nil for anything else.
func (d inDocument) dataMany() []inResource {
	raw := bytes.TrimSpace(d.Data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var res []inResource
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil
	}
	return res
}

// includedIndex keys every included resource by "type_id" so relationship
// references can be joined back to their resources.
type includedIndex map[string]inResource

func (d inDocument) index() includedIndex {
	idx := make(includedIndex, len(d.Included))
	for _, res := range d.Included {
		idx[res.Type+"_"+res.ID] = res
	}
	return idx
}

// resolve follows a to-one relationship of r into the included set.
func (idx includedIndex) resolve(r inResource, name string) (inResource, bool) {
	ref, ok := r.relatedRef(name)
	if !ok {
		return inResource{}, false
	}
	res, ok := idx[ref.Type+"_"+ref.ID]
	return res, ok
}

// decodeAttrs fills out from a resource's attributes, leaving zero values
// for anything missing or mistyped.
func decodeAttrs(raw json.RawMessage, out any) {
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, out)
	}
}
