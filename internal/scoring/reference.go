package scoring

// ReferenceNormal returns a payload for a typical legitimate transaction,
// used by the self-test endpoint.
func ReferenceNormal() map[string]any {
	return map[string]any{
		"V1": -1.359807, "V2": -0.072781, "V3": 2.536347, "V4": 1.378155,
		"V5": -0.338321, "V6": 0.462388, "V7": 0.239599, "V8": 0.098698,
		"V9": 0.363787, "V10": 0.090794, "V11": -0.551600, "V12": -0.617801,
		"V13": -0.991390, "V14": -0.311169, "V15": 1.468177, "V16": -0.470401,
		"V17": 0.207971, "V18": 0.025791, "V19": 0.403993, "V20": 0.251412,
		"V21": -0.018307, "V22": 0.277838, "V23": -0.110474, "V24": 0.066928,
		"V25": 0.128539, "V26": -0.189115, "V27": 0.133558, "V28": -0.021053,
		"Amount": 149.62,
	}
}

// ReferenceFraud returns a payload with the signature of a fraudulent
// transaction, used by the self-test endpoint.
func ReferenceFraud() map[string]any {
	return map[string]any{
		"V1": -4.832, "V2": 3.483, "V3": -5.069, "V4": 2.672,
		"V5": -2.281, "V6": -2.578, "V7": -3.292, "V8": -0.753,
		"V9": -1.822, "V10": -4.174, "V11": 3.498, "V12": -3.282,
		"V13": -0.237, "V14": -7.749, "V15": 0.543, "V16": -2.298,
		"V17": -2.493, "V18": -0.569, "V19": 0.992, "V20": 0.798,
		"V21": -0.137, "V22": 0.141, "V23": -0.206, "V24": 0.502,
		"V25": 0.219, "V26": -0.167, "V27": 0.096, "V28": -0.017,
		"Amount": 1.00,
	}
}
