package dataset

// sampleCSV is a small sheet in the published layout: two HEVs, a PHEV,
// two BEVs and an FCEV over three months, with blank and malformed cells.
const sampleCSV = `,Toyota,Honda,Chevrolet,Nissan,Tesla,Toyota
,Prius,Insight,Volt,Leaf,Model S,Mirai
,HEV,HEV,PHEV,BEV,BEV,FCEV
2016-01,100,20,30,40,50,
2016-02,110,,35,n/a,60,1
2016-03,120,25,40,45,12.9,2
`

func sampleRows() RawRows {
	return RawRows{
		{"", "Toyota", "Honda", "Chevrolet", "Nissan", "Tesla", "Toyota"},
		{"", "Prius", "Insight", "Volt", "Leaf", "Model S", "Mirai"},
		{"", "HEV", "HEV", "PHEV", "BEV", "BEV", "FCEV"},
		{"2016-01", "100", "20", "30", "40", "50", ""},
		{"2016-02", "110", "", "35", "n/a", "60", "1"},
		{"2016-03", "120", "25", "40", "45", "12.9", "2"},
	}
}
