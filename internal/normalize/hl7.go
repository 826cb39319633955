package normalize

import (
	"fmt"
	"strings"
)

// segmentLabels maps HL7v2 segment type codes to human-readable section
// labels for the normalized rendering.
var segmentLabels = map[string]string{
	"MSH": "Message Header",
	"PID": "Patient Identification",
	"PV1": "Patient Visit",
	"OBX": "Observation/Result",
	"ORC": "Common Order",
	"OBR": "Observation Request",
	"NTE": "Notes and Comments",
	"AL1": "Patient Allergy Information",
	"DG1": "Diagnosis",
	"PR1": "Procedures",
	"RXA": "Pharmacy/Treatment Administration",
	"RXR": "Pharmacy/Treatment Route",
	"RXO": "Pharmacy/Treatment Order",
	"SPM": "Specimen",
	"NK1": "Next of Kin",
	"IN1": "Insurance",
	"ACC": "Accident",
	"UB1": "UB82",
	"UB2": "UB92 Data",
}

// parseHL7 renders a pipe-delimited HL7v2 message as labeled sections. Known
// segments get named sub-fields by fixed positional index; unknown segments
// still emit their leading fields so no segment is silently dropped.
func parseHL7(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	lines := strings.Split(strings.TrimSpace(content), "\n")

	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 2 {
			continue
		}

		segType := fields[0]
		label, known := segmentLabels[segType]
		if !known {
			label = segType
		}
		out = append(out, fmt.Sprintf("\n[%s (%s)]", label, segType))

		switch segType {
		case "MSH":
			if len(fields) > 9 {
				out = append(out,
					"  Sending Application: "+fieldAt(fields, 2),
					"  Receiving Application: "+fieldAt(fields, 4),
					"  Message Type: "+fieldAt(fields, 8),
					"  Message Control ID: "+fieldAt(fields, 9),
				)
			}
		case "PID":
			if len(fields) > 3 {
				out = append(out,
					"  Patient ID: "+fieldAt(fields, 3),
					"  Patient Name: "+fieldAt(fields, 5),
					"  Date of Birth: "+fieldAt(fields, 7),
					"  Sex: "+fieldAt(fields, 8),
					"  Address: "+fieldAt(fields, 11),
				)
			}
		case "OBX":
			if len(fields) > 5 {
				out = append(out,
					"  Observation: "+fieldAt(fields, 3),
					"  Value: "+strings.TrimSpace(fieldAt(fields, 5)+" "+fieldAt(fields, 6)),
				)
				if flag := fieldAt(fields, 8); flag != "" {
					out = append(out, "  Abnormal Flag: "+flag)
				}
				if status := fieldAt(fields, 11); status != "" {
					out = append(out, "  Status: "+status)
				}
			}
		case "DG1":
			if len(fields) > 3 {
				out = append(out,
					"  Diagnosis Code: "+fieldAt(fields, 3),
					"  Diagnosis Description: "+fieldAt(fields, 4),
				)
			}
		case "NTE":
			if len(fields) > 3 {
				out = append(out, "  Note: "+fieldAt(fields, 3))
			}
		default:
			end := len(fields)
			if end > 6 {
				end = 6
			}
			keyFields := strings.Join(fields[1:end], " | ")
			if strings.TrimSpace(keyFields) != "" {
				out = append(out, "  Data: "+keyFields)
			}
		}
	}

	if len(out) == 0 {
		return content
	}
	return strings.Join(out, "\n")
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
