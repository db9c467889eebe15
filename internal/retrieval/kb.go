package retrieval

// Item is one knowledge base entry.
type Item struct {
	Domain string
	Lang   string
	Text   string
}

// SeedKB returns the built-in multilingual knowledge base covering public
// health, agriculture and education services.
func SeedKB() []Item {
	return []Item{
		{Domain: "health", Lang: "en", Text: "Government primary health centers offer free screenings for diabetes and hypertension to adults over 30."},
		{Domain: "health", Lang: "hi", Text: "सरकारी प्राथमिक स्वास्थ्य केंद्र 30 वर्ष से अधिक आयु के वयस्कों के लिए मधुमेह और उच्च रक्तचाप की मुफ्त जांच प्रदान करते हैं।"},
		{Domain: "health", Lang: "te", Text: "ప్రభుత్వ ప్రాథమిక ఆరోగ్య కేంద్రాలు 30 ఏళ్లు పైబడిన పెద్దలకు ఉచిత మధుమేహం మరియు రక్తపోటు పరీక్షలు అందిస్తాయి."},
		{Domain: "health", Lang: "en", Text: "Children under five are eligible for free vaccination drives held at local anganwadi centers every month."},
		{Domain: "health", Lang: "hi", Text: "पांच वर्ष से कम आयु के बच्चों के लिए हर महीने स्थानीय आंगनवाड़ी केंद्रों में मुफ्त टीकाकरण अभियान चलाए जाते हैं।"},
		{Domain: "agriculture", Lang: "en", Text: "Farmers can apply for crop insurance before the sowing season through the nearest agriculture extension office."},
		{Domain: "agriculture", Lang: "hi", Text: "किसान बुवाई के मौसम से पहले निकटतम कृषि विस्तार कार्यालय के माध्यम से फसल बीमा के लिए आवेदन कर सकते हैं।"},
		{Domain: "agriculture", Lang: "te", Text: "రైతులు విత్తన కాలానికి ముందు సమీప వ్యవసాయ విస్తరణ కార్యాలయం ద్వారా పంట బీమాకు దరఖాస్తు చేసుకోవచ్చు."},
		{Domain: "education", Lang: "en", Text: "Government schools provide free midday meals and textbooks to all enrolled students up to class eight."},
		{Domain: "education", Lang: "hi", Text: "सरकारी स्कूल कक्षा आठ तक के सभी नामांकित छात्रों को मुफ्त मध्याह्न भोजन और पाठ्यपुस्तकें प्रदान करते हैं।"},
		{Domain: "education", Lang: "te", Text: "ప్రభుత్వ పాఠశాలలు ఎనిమిదో తరగతి వరకు నమోదైన విద్యార్థులందరికీ ఉచిత మధ్యాహ్న భోజనం మరియు పాఠ్యపుస్తకాలు అందిస్తాయి."},
		{Domain: "education", Lang: "en", Text: "Scholarship applications for students from rural areas open every year in June on the national portal."},
	}
}
