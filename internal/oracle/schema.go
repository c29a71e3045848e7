package oracle

// ClassificationSchema is the JSON Schema for the analyst's structured
// output. Passed as responseJsonSchema so the provider constrains
// generation to the envelope; validation on receipt still runs because
// schema enforcement does not cover the per-status field requirements.
//
// Structure:
//
//	{
//	  "status": "CLARIFICATION_NEEDED" | "READY_FOR_RESEARCH" | "REJECTED",
//	  "reason": "...", "questions": ["..."],          // scenario A
//	  "buyer_entity": "...", "buyer_domain": "...",
//	  "seller_entity": "...", "research_focus": "...",// scenario B
//	  "message": "..."                                // scenario C
//	}
const ClassificationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["status"],
  "additionalProperties": false,
  "properties": {
    "status": {
      "type": "string",
      "enum": ["CLARIFICATION_NEEDED", "READY_FOR_RESEARCH", "REJECTED"],
      "description": "The decision status based on the analysis criteria"
    },
    "reason": {
      "type": "string",
      "description": "Brief explanation of what is missing or ambiguous"
    },
    "questions": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Specific questions to ask the user"
    },
    "buyer_entity": {
      "type": "string",
      "description": "Name of the target company"
    },
    "buyer_domain": {
      "type": "string",
      "description": "Domain of the target company"
    },
    "seller_entity": {
      "type": "string",
      "description": "Name of the requesting company"
    },
    "research_focus": {
      "type": "string",
      "description": "Summary of user intent"
    },
    "message": {
      "type": "string",
      "description": "Polite refusal message for unsafe inputs"
    }
  }
}`
